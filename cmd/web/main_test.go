package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewPageData(t *testing.T) {
	data, err := newPageData("play.example.com", "2222")
	if err != nil {
		t.Fatalf("newPageData: %v", err)
	}
	if data.SSHCommand != "ssh -p 2222 play.example.com" {
		t.Errorf("command = %q", data.SSHCommand)
	}
	if !strings.HasPrefix(string(data.QRCode), "data:image/png;base64,") {
		t.Errorf("qr code is not a png data uri")
	}

	data, err = newPageData("play.example.com", "22")
	if err != nil {
		t.Fatal(err)
	}
	if data.SSHCommand != "ssh play.example.com" {
		t.Errorf("default port command = %q", data.SSHCommand)
	}
}

func TestPageRenders(t *testing.T) {
	data, err := newPageData("play.example.com", "2222")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "ssh -p 2222 play.example.com") {
		t.Error("ssh command missing from page")
	}
	if !strings.Contains(out, `src="data:image/png;base64,`) {
		t.Error("qr code not inlined")
	}
}
