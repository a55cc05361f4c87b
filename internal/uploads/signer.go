package uploads

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Credential is the set of fields a client attaches to a direct upload
// to the image host.
type Credential struct {
	APIKey    string `json:"apiKey"`
	Timestamp int64  `json:"timestamp"`
	Folder    string `json:"folder"`
	Signature string `json:"signature"`
	UploadURL string `json:"uploadUrl"`
}

// Signer produces signed upload credentials compatible with the image
// host's direct-upload API: the signature is the hex SHA-1 of the
// alphabetically sorted parameter string with the API secret appended.
type Signer struct {
	cloudName string
	apiKey    string
	apiSecret string
	now       func() time.Time
}

func NewSigner(cloudName, apiKey, apiSecret string) *Signer {
	return &Signer{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		now:       time.Now,
	}
}

// SignFolder issues a credential scoped to a single folder and the
// current timestamp.
func (s *Signer) SignFolder(folder string) Credential {
	ts := s.now().Unix()
	return Credential{
		APIKey:    s.apiKey,
		Timestamp: ts,
		Folder:    folder,
		Signature: s.signature(map[string]string{
			"folder":    folder,
			"timestamp": fmt.Sprintf("%d", ts),
		}),
		UploadURL: fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", s.cloudName),
	}
}

func (s *Signer) signature(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.apiSecret))
	return hex.EncodeToString(sum[:])
}
