package relay

import (
	"context"

	"go.uber.org/zap"
)

// FormSubmitClient posts to a FormSubmit-style mail relay. Any 2xx answer is success;
// the body is not interpreted.
type FormSubmitClient struct {
	url  string
	opts Options
}

func NewFormSubmitClient(url string, opts Options) *FormSubmitClient {
	return &FormSubmitClient{url: url, opts: opts}
}

func (c *FormSubmitClient) Submit(ctx context.Context, form Form) error {
	client := c.opts.httpClient()
	log := c.opts.logger()

	return run(c.opts.Breaker, func() error {
		status, _, err := post(ctx, client, c.url, form)
		if err != nil {
			log.Warn("mail relay request failed", zap.Error(err))
			return err
		}
		if status < 200 || status > 299 {
			log.Warn("mail relay rejected submission", zap.Int("status", status))
			return &RejectionError{Status: status}
		}
		return nil
	})
}
