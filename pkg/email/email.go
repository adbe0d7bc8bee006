package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendPasswordResetEmail sends a password reset email
func (s *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	htmlContent, err := s.renderTemplate(passwordResetTemplate, passwordResetData{
		Email:    toEmail,
		ResetURL: resetURL,
		AppName:  "TrimTally",
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "Reset Your Password - TrimTally"
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// SendMemberInviteEmail notifies a user that they were added to a barbershop
func (s *EmailService) SendMemberInviteEmail(toEmail, shopName string) error {
	htmlContent, err := s.renderTemplate(memberInviteTemplate, memberInviteData{
		Email:    toEmail,
		ShopName: shopName,
		LoginURL: s.config.FrontendURL + "/login",
		AppName:  "TrimTally",
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("You were added to %s - TrimTally", shopName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

func (s *EmailService) renderTemplate(text string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

type passwordResetData struct {
	Email    string
	ResetURL string
	AppName  string
}

type memberInviteData struct {
	Email    string
	ShopName string
	LoginURL string
	AppName  string
}

// passwordResetTemplate is the HTML template for password reset emails
const passwordResetTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Reset Your Password</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
        <tr>
            <td style="background: #1a1a2e; padding: 32px 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 26px; font-weight: 600;">{{.AppName}}</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 40px 30px;">
                <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 22px;">Reset Your Password</h2>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    We received a request to reset the password for the account associated with <strong>{{.Email}}</strong>.
                </p>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    Click the button below to reset your password. This link will expire in <strong>1 hour</strong>.
                </p>
                <table role="presentation" style="margin: 30px auto;">
                    <tr>
                        <td style="background: #1a1a2e; border-radius: 8px;">
                            <a href="{{.ResetURL}}" style="display: inline-block; padding: 14px 30px; color: #ffffff; text-decoration: none; font-size: 16px; font-weight: 600;">
                                Reset Password
                            </a>
                        </td>
                    </tr>
                </table>
                <p style="color: #718096; font-size: 14px; line-height: 1.6;">
                    If you didn't request this password reset, you can safely ignore this email.
                </p>
                <p style="color: #667eea; font-size: 14px; word-break: break-all;">
                    <a href="{{.ResetURL}}" style="color: #667eea;">{{.ResetURL}}</a>
                </p>
            </td>
        </tr>
        <tr>
            <td style="background-color: #f8fafc; padding: 24px; text-align: center; border-top: 1px solid #e2e8f0;">
                <p style="color: #a0aec0; font-size: 13px; margin: 0;">This email was sent by {{.AppName}}</p>
            </td>
        </tr>
    </table>
</body>
</html>
`

// memberInviteTemplate is the HTML template for shop member invitations
const memberInviteTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>You've Been Added</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
        <tr>
            <td style="background: #1a1a2e; padding: 32px 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 26px; font-weight: 600;">{{.AppName}}</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 40px 30px;">
                <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 22px;">Welcome to {{.ShopName}}</h2>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    Your account <strong>{{.Email}}</strong> has been added to <strong>{{.ShopName}}</strong> on {{.AppName}}.
                    You can now log your haircuts and track your income.
                </p>
                <table role="presentation" style="margin: 30px auto;">
                    <tr>
                        <td style="background: #1a1a2e; border-radius: 8px;">
                            <a href="{{.LoginURL}}" style="display: inline-block; padding: 14px 30px; color: #ffffff; text-decoration: none; font-size: 16px; font-weight: 600;">
                                Log In
                            </a>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
        <tr>
            <td style="background-color: #f8fafc; padding: 24px; text-align: center; border-top: 1px solid #e2e8f0;">
                <p style="color: #a0aec0; font-size: 13px; margin: 0;">This email was sent by {{.AppName}}</p>
            </td>
        </tr>
    </table>
</body>
</html>
`
