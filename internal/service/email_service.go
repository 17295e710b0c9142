package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends transactional email via Amazon SES. With no
// sender address configured it runs disabled and every send becomes a
// logged no-op, so local setups need no AWS credentials.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcome greets a newly registered tutor
func (s *EmailService) SendWelcome(ctx context.Context, toEmail, toName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): welcome to %s", toEmail)
		return nil
	}

	subject := "Bem-vindo ao Buba!"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="color: #4a90e2;">Olá, %s!</h1>
		<p>Sua conta de tutor foi criada com sucesso.</p>
		<p>Agora você pode cadastrar aprendizes, montar rotinas e acompanhar o progresso nas atividades.</p>
		<p><a href="%s" style="display: inline-block; padding: 12px 30px; background-color: #4a90e2; color: white; text-decoration: none; border-radius: 5px;">Acessar o Buba</a></p>
	</div>
</body>
</html>`, toName, s.appBaseURL)
	textBody := fmt.Sprintf("Olá, %s!\n\nSua conta de tutor foi criada com sucesso.\nAcesse: %s\n", toName, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendPasswordReset emails a tutor a reset link
func (s *EmailService) SendPasswordReset(ctx context.Context, toEmail, toName, resetToken string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): password reset to %s", toEmail)
		return nil
	}

	resetLink := fmt.Sprintf("%s/auth/reset-password?token=%s", s.appBaseURL, resetToken)
	subject := "Redefinição de senha - Buba"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="color: #4a90e2;">Olá, %s</h1>
		<p>Recebemos um pedido para redefinir sua senha.</p>
		<p><a href="%s" style="display: inline-block; padding: 12px 30px; background-color: #4a90e2; color: white; text-decoration: none; border-radius: 5px;">Redefinir senha</a></p>
		<p>O link expira em 1 hora. Se você não pediu a redefinição, ignore este email.</p>
	</div>
</body>
</html>`, toName, resetLink)
	textBody := fmt.Sprintf("Olá, %s\n\nPara redefinir sua senha, acesse:\n%s\n\nO link expira em 1 hora.\n", toName, resetLink)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendApprenticeCredentials emails the tutor the login credentials
// generated for a new apprentice.
func (s *EmailService) SendApprenticeCredentials(ctx context.Context, toEmail, tutorName, apprenticeName, username, pin string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): apprentice credentials to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("Credenciais de acesso de %s - Buba", apprenticeName)
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="color: #4a90e2;">Olá, %s</h1>
		<p>O perfil de <strong>%s</strong> foi criado. Estas são as credenciais de acesso:</p>
		<p style="font-size: 18px;">Usuário: <strong>%s</strong><br>PIN: <strong>%s</strong></p>
		<p>Guarde o PIN com cuidado; ele não será mostrado novamente.</p>
	</div>
</body>
</html>`, tutorName, apprenticeName, username, pin)
	textBody := fmt.Sprintf("Olá, %s\n\nO perfil de %s foi criado.\nUsuário: %s\nPIN: %s\n\nGuarde o PIN com cuidado; ele não será mostrado novamente.\n", tutorName, apprenticeName, username, pin)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent: to=%s, subject=%s", toEmail, subject)
	return nil
}
