package main

import (
	_ "embed"
	"encoding/base64"
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/skip2/go-qrcode"

	"github.com/alessiosferro/space-shooter-v1/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
	qrSize      = 256
)

//go:embed index.html
var htmlPage string

var page = template.Must(template.New("index").Parse(htmlPage))

type pageData struct {
	SSHHost    string
	SSHPort    string
	SSHCommand string
	QRCode     template.URL // PNG data URI of SSHCommand
}

func main() {
	logger := config.NewLogger(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)

	data, err := newPageData(
		config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		config.GetEnv("SSH_DISPLAY_PORT", "2222"),
	)
	if err != nil {
		logger.Fatal("failed to build page", "err", err)
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, data); err != nil {
			logger.Error("render page", "err", err)
		}
	})

	http.HandleFunc("/qr.png", func(w http.ResponseWriter, r *http.Request) {
		png, err := qrcode.Encode(data.SSHCommand, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	})

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr, "ssh", data.SSHCommand)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newPageData builds the landing page contents, including a QR code that
// phones can scan to copy the ssh command.
func newPageData(sshHost, sshPort string) (pageData, error) {
	cmd := "ssh " + sshHost
	if sshPort != "" && sshPort != "22" {
		cmd = "ssh -p " + sshPort + " " + sshHost
	}
	png, err := qrcode.Encode(cmd, qrcode.Medium, qrSize)
	if err != nil {
		return pageData{}, err
	}
	return pageData{
		SSHHost:    sshHost,
		SSHPort:    sshPort,
		SSHCommand: cmd,
		QRCode:     template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
	}, nil
}
