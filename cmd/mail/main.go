package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/marcusball/class-scheduler/internal/config"
	"github.com/marcusball/class-scheduler/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

type mailKind struct {
	template string
	subject  string
	data     func() any
}

var kinds = map[string]mailKind{
	domain.MailTypeCreateUser: {
		template: "./templates/new_account_email.html",
		subject:  "Class Scheduler - your account",
		data:     func() any { return &domain.CreateUserMailData{} },
	},
	domain.MailTypeSchedulesGenerated: {
		template: "./templates/schedules_generated_email.html",
		subject:  "Class Scheduler - schedules generated",
		data:     func() any { return &domain.SchedulesGeneratedMailData{} },
	},
}

// incoming mirrors domain.MailMessage with the payload left undecoded until the type is known.
type incoming struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

func buildMessage(from string, body []byte) (*mail.Msg, error) {
	in := incoming{}
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}

	kind, ok := kinds[in.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported mail type %q", in.Type)
	}

	data := kind.data()
	if err := json.Unmarshal(in.Data, data); err != nil {
		return nil, fmt.Errorf("decode %s data: %w", in.Type, err)
	}

	tmpl, err := template.ParseFiles(kind.template)
	if err != nil {
		return nil, err
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, err
	}
	if err := m.To(in.To); err != nil {
		return nil, err
	}
	if err := m.SetBodyHTMLTemplate(tmpl, data); err != nil {
		return nil, err
	}
	m.Subject(kind.subject)

	return m, nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	/**********************************************
	 * mail client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("cannot create the mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("cannot reach the mail server", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("cannot connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("cannot open a channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.Queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		logger.Error("cannot declare the queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",    // consumer tag chosen by the broker
		false, // manual ack
		false, // exclusive
		false, // no-local, unsupported by rabbitmq
		false, // no-wait
		nil,
	)
	if err != nil {
		logger.Error("cannot consume the queue", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Error("delivery channel closed")
					return
				}

				m, err := buildMessage(cfg.Email.SMTP.Username, msg.Body)
				if err != nil {
					logger.Error("dropping mail", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				if err := client.DialAndSend(m); err != nil {
					logger.Error("cannot send mail", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // requeue
					continue
				}

				logger.Info("mail sent")
				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("waiting for messages, press CTRL+C to exit")
	<-sigChan

	logger.Info("stopping mail worker")
	cancel()
	wg.Wait()
	logger.Info("mail worker stopped")
}
