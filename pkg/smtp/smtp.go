package smtp

import (
	"fmt"
	smtpPkg "net/smtp"
	"os"
)

type ItfSmtp interface {
	SendBookingConfirmation(patientEmail string, details BookingMailDetails) error
}

type BookingMailDetails struct {
	PatientName string
	DoctorName  string
	Date        string
	Time        string
	Location    string
	BookingID   string
}

type smtp struct {
	auth smtpPkg.Auth
	mail string
	host string
	addr string
}

func New() ItfSmtp {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	auth := smtpPkg.PlainAuth("", mail, password, host)

	return &smtp{auth: auth, mail: mail, host: host, addr: host + ":587"}
}

func (s *smtp) SendBookingConfirmation(patientEmail string, details BookingMailDetails) error {
	to := []string{patientEmail}

	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nYour appointment is confirmed.\r\n\r\n"+
			"Doctor: %s\r\nDate: %s\r\nTime: %s\r\nLocation: %s\r\n"+
			"Confirmation code: %s\r\n\r\n"+
			"Please arrive 15 minutes early and bring your insurance card.\r\n",
		details.PatientName, details.DoctorName, details.Date, details.Time,
		details.Location, details.BookingID,
	)

	message := []byte(fmt.Sprintf(
		"To: %s\r\nSubject: Appointment Confirmation %s\r\n\r\n%s",
		patientEmail, details.BookingID, body,
	))

	if err := smtpPkg.SendMail(s.addr, s.auth, s.mail, to, message); err != nil {
		return err
	}

	return nil
}
