package auth

import (
	"fmt"
	"log"
	"net/smtp"
	"os"

	"sellify-app/config"
)

func sendMail(to, subject, body string) error {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")

	auth := smtp.PlainAuth("", from, password, host)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	err := smtp.SendMail(host+":"+port, auth, from, []string{to}, message)
	if err != nil {
		log.Println("❌ SMTP error:", err)
	}
	return err
}

func SendVerificationEmail(to string, token string) error {
	link := fmt.Sprintf("%s/verify?token=%s", config.CLIENT_URL, token)
	body := fmt.Sprintf("Click the following link to verify your Sellify account:\n\n%s", link)
	return sendMail(to, "Verify Your Sellify Account", body)
}

func SendPasswordResetEmail(to string, link string) error {
	body := fmt.Sprintf("Click the following link to reset your password:\n\n%s\n\nThe link expires in one hour.", link)
	return sendMail(to, "Reset Your Sellify Password", body)
}
