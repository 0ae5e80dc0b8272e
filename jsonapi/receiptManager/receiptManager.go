// Package receiptManager asks an external extraction-service for best-effort field
// guesses from a photographed fuel-receipt. Guesses are never written directly -
// they get staged through the reconciliation like any other import-row.
package receiptManager

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/Compufreak345/dbg"
	"golang.org/x/net/context"
)

const TAG = "gofuel-lib/jsonApi/receiptManager"

const DefaultTimeout = 30 * time.Second

var ErrBadServiceAnswer = errors.New("Extraction-service returned an unreadable answer")

// ReceiptGuess holds the field-guesses extracted from one receipt-image.
// Zero values mean "not found on the receipt".
type ReceiptGuess struct {
	Date   string
	Km     int64
	Price  float64
	Cost   float64
	Liters float64
}

// Extractor turns a receipt-image into field-guesses.
type Extractor interface {
	ExtractReceipt(imgPath string) (guess *ReceiptGuess, err error)
}

// HttpExtractor posts the image to an extraction-service-endpoint.
type HttpExtractor struct {
	Endpoint string
	Timeout  time.Duration
	Client   *http.Client
}

// ExtractReceipt uploads the given image and parses the services JSON-answer.
func (e *HttpExtractor) ExtractReceipt(imgPath string) (guess *ReceiptGuess, err error) {
	f, err := os.Open(imgPath)
	if err != nil {
		dbg.E(TAG, "Error opening receipt-image %v : ", imgPath, err)
		return
	}
	defer f.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("receipt", imgPath)
	if err != nil {
		dbg.E(TAG, "Error creating multipart-form : ", err)
		return
	}
	_, err = io.Copy(part, f)
	if err != nil {
		dbg.E(TAG, "Error copying receipt-image into request : ", err)
		return
	}
	err = writer.Close()
	if err != nil {
		dbg.E(TAG, "Error closing multipart-writer : ", err)
		return
	}

	timeout := e.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequest("POST", e.Endpoint, body)
	if err != nil {
		dbg.E(TAG, "Error initialising extraction-request : ", err)
		return
	}
	req.Header.Add("Content-Type", writer.FormDataContentType())

	client := e.Client
	if client == nil {
		client = &http.Client{}
	}
	res, err := client.Do(req.WithContext(ctx))
	if err != nil {
		dbg.E(TAG, "Error executing extraction-request : ", err)
		return
	}
	defer res.Body.Close()
	rb, err := ioutil.ReadAll(res.Body)
	if err != nil {
		dbg.E(TAG, "Error reading extraction-response body : ", err)
		return
	}
	if res.StatusCode != 200 {
		dbg.E(TAG, "Extraction-service returned status %d - body : %s", res.StatusCode, rb)
		err = ErrBadServiceAnswer
		return
	}
	guess = &ReceiptGuess{}
	err = json.Unmarshal(rb, guess)
	if err != nil {
		dbg.E(TAG, "Unable to json-parse extraction-response body : %s", rb)
		if dbg.Debugging {
			dbg.WTF(TAG, "Unreadable response : %s", rb)
		}
		guess = nil
		err = ErrBadServiceAnswer
		return
	}
	return
}
