package mailer

import (
	"fmt"
	"html"
	"strings"

	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/pkg/dialogue"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendOrderConfirmation(toEmail, customerName string, order *entity.Order) error
}

type emailService struct {
	dialer     *gomail.Dialer
	sender     string
	senderName string
	logger     logger.ILogger
}

// NewEmailService sends from the SMTP account itself, shown as senderName.
func NewEmailService(host string, port int, username, password, senderName string, log logger.ILogger) IEmailService {
	return &emailService{
		dialer:     gomail.NewDialer(host, port, username, password),
		sender:     username,
		senderName: senderName,
		logger:     log,
	}
}

func (s *emailService) SendOrderConfirmation(toEmail, customerName string, order *entity.Order) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.sender, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Xác nhận đơn hàng %s", order.OrderCode))
	m.SetBody("text/html", RenderOrderConfirmation(customerName, order))

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("MAILER", "Failed to send order confirmation", map[string]interface{}{
			"order_code": order.OrderCode,
			"to":         toEmail,
			"error":      err.Error(),
		})
		return err
	}

	s.logger.Info("MAILER", "Order confirmation sent", map[string]interface{}{
		"order_code": order.OrderCode,
		"to":         toEmail,
	})
	return nil
}

func RenderOrderConfirmation(customerName string, order *entity.Order) string {
	var rows strings.Builder
	for _, line := range order.Items {
		variant := strings.Trim(strings.Join([]string{line.Size, line.Color}, " / "), " /")
		fmt.Fprintf(&rows, `<tr><td>%s</td><td>%s</td><td>%d</td><td>%s</td></tr>`,
			html.EscapeString(line.Name), html.EscapeString(variant), line.Quantity,
			dialogue.FormatVND(line.UnitPrice*int64(line.Quantity)))
	}

	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Cảm ơn %s đã đặt hàng!</h2>
			<p>Mã đơn hàng: <strong>%s</strong> (%s)</p>
			<table cellpadding="6" style="border-collapse: collapse;">
				<tr><th>Sản phẩm</th><th>Phân loại</th><th>SL</th><th>Thành tiền</th></tr>
				%s
			</table>
			<h3>Tổng cộng: %s</h3>
		</div>
	`, html.EscapeString(customerName), html.EscapeString(order.OrderCode), order.PaymentMethod,
		rows.String(), dialogue.FormatVND(order.TotalAmount))
}
