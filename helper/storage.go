package helper

import (
	"bytes"
	"context"
	"log"
	"os"

	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"gorm.io/gorm"
)

func InitCloudinary() (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
}

// AttachTicketQR sinh QR cho vé, upload lên storage và lưu URL lại.
// Best-effort: lỗi chỉ log, không ảnh hưởng booking.
func AttachTicketQR(db *gorm.DB, ticket *model.Ticket) {
	qrBytes, err := utils.GenerateQRCode(ticket.TicketCode, 256)
	if err != nil {
		log.Printf("Failed to generate QR for ticket %s: %v", ticket.TicketNumber, err)
		return
	}

	cld, err := InitCloudinary()
	if err != nil {
		log.Printf("Cloudinary init failed: %v", err)
		return
	}

	result, err := cld.Upload.Upload(context.Background(), bytes.NewReader(qrBytes), uploader.UploadParams{
		PublicID: "tickets/qr_" + ticket.TicketCode,
		Folder:   "tickets",
	})
	if err != nil {
		log.Printf("Failed to upload QR for ticket %s: %v", ticket.TicketNumber, err)
		return
	}

	if err := db.Model(ticket).Update("qr_url", result.SecureURL).Error; err != nil {
		log.Printf("Failed to save QR url for ticket %s: %v", ticket.TicketNumber, err)
		return
	}
	ticket.QrUrl = &result.SecureURL
}
