package smtp

import (
	"mime"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendEMail(to, subject, message string) error
}

type Config struct {
	User       string
	Password   string
	Host       string
	Port       string
	TLSEnabled bool
	From       string
}

func Connect(cfg Config) error {
	Instance = NewInstance(cfg)
	return nil
}

func NewInstance(cfg Config) Provider {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &impl{
		user:       cfg.User,
		password:   cfg.Password,
		host:       cfg.Host,
		port:       cfg.Port,
		tlsEnabled: cfg.TLSEnabled,
		from:       from,
	}
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
	from       string
}

func (i impl) SendEMail(to, subject, message string) (err error) {
	logger := log.
		WithField("recipient", to).
		WithField("subject", subject)
	if strings.ContainsAny(to, "\r\n") {
		return errors.New("некорректный адрес получателя")
	}
	if i.user == "" || i.host == "" || i.port == "" {
		logger.Warn("Письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	sendTo := []string{
		to,
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	body := strings.NewReader(buildMessage(i.from, to, subject, message))

	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.from, sendTo, body)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.from, sendTo, body)
	}
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

func buildMessage(from, to, subject, message string) string {
	headers := []string{
		"From: " + headerValue(from),
		"To: " + headerValue(to),
		"Subject: " + mime.QEncoding.Encode("utf-8", "Staff Portal - "+headerValue(subject)),
		"MIME-version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + message + "\r\n"
}

// headerValue переводы строк в заголовке письма недопустимы
func headerValue(value string) string {
	return strings.NewReplacer("\r", "", "\n", " ").Replace(value)
}
