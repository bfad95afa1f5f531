package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	labelWidth  = 400
	labelHeight = 300
	// pixels per QR module
	qrModuleSize = 4
)

var (
	labelTextOrigin = image.Pt(10, 10)
	labelQROrigin   = image.Pt(250, 50)
)

// LabelText builds the text block printed on a product label
func LabelText(prod map[string]string) string {
	return fmt.Sprintf("%s - %s\nSize: %s\nPrice: %s NOK\nProducer: %s",
		prod["short_id"], prod["name"], prod["package_size"], prod["base_price"], prod["producer"])
}

// LabelPayload builds the JSON encoded into the label's QR code
func LabelPayload(prod map[string]string) (string, error) {
	payload, err := json.Marshal(struct {
		ProductID string `json:"product_id"`
		ShortID   string `json:"short_id"`
	}{prod["product_id"], prod["short_id"]})
	if err != nil {
		return "", fmt.Errorf("failed to encode label payload: %w", err)
	}
	return string(payload), nil
}

// GenerateLabel renders a 400x300 PNG shelf label with the product text and a QR code
func GenerateLabel(prod map[string]string) ([]byte, error) {
	payload, err := LabelPayload(prod)
	if err != nil {
		return nil, err
	}

	qr, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to build QR code: %w", err)
	}
	qrImg := qr.Image(-qrModuleSize)

	img := imaging.New(labelWidth, labelHeight, color.White)
	drawText(img, LabelText(prod), labelTextOrigin)
	img = imaging.Paste(img, qrImg, labelQROrigin)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode label: %w", err)
	}
	return buf.Bytes(), nil
}

// drawText draws multi-line text in black with its top-left corner at origin
func drawText(img *image.NRGBA, text string, origin image.Point) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	lineHeight := face.Metrics().Height.Ceil()
	for i, line := range strings.Split(text, "\n") {
		d.Dot = fixed.P(origin.X, origin.Y+face.Ascent+i*lineHeight)
		d.DrawString(line)
	}
}
