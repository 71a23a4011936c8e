package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// TicketConfirmationData dữ liệu cho template email xác nhận vé
type TicketConfirmationData struct {
	TicketNumber string
	EventName    string
	Venue        string
	StartTime    string
	TierName     string
	Quantity     int
	TotalAmount  float64
	PointsEarned int
	DetailLink   string
}

// SendTicketConfirmationEmail gửi email xác nhận kèm QR code (async).
// Thất bại chỉ log, không chặn flow thanh toán.
func SendTicketConfirmationEmail(to string, data TicketConfirmationData, qrBytes []byte) {
	go func() {
		tmplPath := "templates/ticket_confirmation.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("Failed to load email template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Failed to render email template: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Ticket confirmed #"+data.TicketNumber)
		m.SetBody("text/html", body.String())

		if len(qrBytes) > 0 {
			filename := fmt.Sprintf("Ticket_%s.png", data.TicketNumber)
			m.Attach(filename, gomail.Rename(filename), gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(qrBytes))
				return err
			}))
		}

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Failed to send confirmation email: %v", err)
		} else {
			log.Printf("Confirmation email with QR sent to %s", to)
		}
	}()
}
