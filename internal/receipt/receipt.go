package receipt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"time"

	"github.com/skip2/go-qrcode"

	"juicepos/internal/models"
)

// payload is what ends up inside the QR: enough to verify a printed
// receipt against the ledger later.
type payload struct {
	SaleID    string    `json:"sale_id"`
	Payment   string    `json:"payment"`
	Subtotal  float64   `json:"subtotal"`
	Surcharge float64   `json:"surcharge"`
	Total     float64   `json:"total"`
	Timestamp time.Time `json:"timestamp"`
	Drinks    []string  `json:"drinks"`
}

type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &Generator{secret: hashed[:]}
}

// GenerateQR renders an encrypted QR PNG for a committed sale.
func (g *Generator) GenerateQR(sale models.Sale) ([]byte, error) {
	p := payload{
		SaleID:    sale.ID,
		Payment:   string(sale.Payment),
		Subtotal:  sale.Subtotal,
		Surcharge: sale.Surcharge,
		Total:     sale.Total,
		Timestamp: sale.Timestamp(),
	}
	for _, d := range sale.Order.Drinks {
		p.Drinks = append(p.Drinks, d.FlavourList())
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	encrypted, err := encryptAES(data, g.secret)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

func encryptAES(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]

	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}
