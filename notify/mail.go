package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/halcyard/finfetch/errors"
	"github.com/halcyard/finfetch/report"
)

// MailNotifier sends auth-failure notifications over SMTP.
type MailNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
}

// NewMailNotifier configures an SMTP notifier. Credentials may be empty
// for unauthenticated relays.
func NewMailNotifier(host string, port int, username, password, from, to string) *MailNotifier {
	return &MailNotifier{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		to:       to,
	}
}

// AuthFailure mails the client's raw output to the operator address.
// The caller logs a send failure; it never changes the run's aggregate
// status.
func (n *MailNotifier) AuthFailure(ctx context.Context, vendor report.Vendor, raw string) error {
	msg, err := n.message(vendor, raw)
	if err != nil {
		return err
	}

	opts := []mail.Option{mail.WithPort(n.port)}
	if n.username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.username),
			mail.WithPassword(n.password),
		)
	}

	c, err := mail.NewClient(n.host, opts...)
	if err != nil {
		return errors.Wrap(err, "failed to create SMTP client")
	}

	if err := c.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrapf(err, "failed to send auth-failure notification for vendor %s", vendor)
	}
	return nil
}

func (n *MailNotifier) message(vendor report.Vendor, raw string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return nil, errors.Wrapf(err, "invalid notification sender %q", n.from)
	}
	if err := msg.To(n.to); err != nil {
		return nil, errors.Wrapf(err, "invalid notification recipient %q", n.to)
	}
	msg.Subject(fmt.Sprintf("finfetch: authentication failure fetching reports for %s", vendor))
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"The report client reported an authentication failure for vendor %s.\n"+
			"The credential or token is likely invalid or expired.\n\n"+
			"Raw client output:\n\n%s\n",
		vendor, raw,
	))
	return msg, nil
}
