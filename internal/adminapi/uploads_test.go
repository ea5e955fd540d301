package adminapi

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

// minimal valid file headers per format
var (
	pngHeader  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13}
	jpegHeader = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	gifHeader  = []byte("GIF89a")
)

func TestSniffImageType(t *testing.T) {
	cases := []struct {
		name    string
		head    []byte
		wantExt string
	}{
		{"png", pngHeader, ".png"},
		{"jpeg", jpegHeader, ".jpg"},
		{"gif", gifHeader, ".gif"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ext, errMsg := sniffImageType(bytes.NewReader(tc.head))
			assert.Empty(t, errMsg)
			assert.Equal(t, tc.wantExt, ext)
		})
	}
}

func TestSniffImageTypeRejectsNonImages(t *testing.T) {
	cases := []struct {
		name string
		body []byte
	}{
		{"html", []byte("<!DOCTYPE html><html><body>x</body></html>")},
		{"pdf", []byte("%PDF-1.7 ...")},
		{"script", []byte("#!/bin/sh\nrm -rf /\n")},
		{"zip", []byte{'P', 'K', 0x03, 0x04, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, errMsg := sniffImageType(bytes.NewReader(tc.body))
			assert.NotEmpty(t, errMsg, "content sniffed as image")
		})
	}
}

func TestSniffImageTypeRewinds(t *testing.T) {
	r := bytes.NewReader(pngHeader)
	_, errMsg := sniffImageType(r)
	assert.Empty(t, errMsg)

	pos, err := r.Seek(0, io.SeekCurrent)
	assert.NoError(t, err)
	assert.Zero(t, pos, "reader must be rewound before the copy to disk")
}

func TestValidateSettingValue(t *testing.T) {
	assert.Empty(t, validateSettingValue("shop", "FreeShippingOver", "500"))
	assert.NotEmpty(t, validateSettingValue("shop", "FreeShippingOver", "-1"))
	assert.NotEmpty(t, validateSettingValue("shop", "FlatShippingFee", "abc"))

	assert.Empty(t, validateSettingValue("shop", "TaxRate", "0.08"))
	assert.NotEmpty(t, validateSettingValue("shop", "TaxRate", "1.5"))
	assert.NotEmpty(t, validateSettingValue("shop", "TaxRate", "-0.01"))

	assert.Empty(t, validateSettingValue("uploads", "MaxUploadMB", "8"))
	assert.NotEmpty(t, validateSettingValue("uploads", "MaxUploadMB", "0"))
	assert.NotEmpty(t, validateSettingValue("uploads", "MaxUploadMB", "100"))

	// unrecognized keys are not validated here
	assert.Empty(t, validateSettingValue("shop", "Currency", "EUR"))
}
