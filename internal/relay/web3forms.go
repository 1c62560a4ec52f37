package relay

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

type web3FormsResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Web3FormsClient posts to a Web3Forms-style forms API. The access key is sent as the
// first field and success is read from the JSON "success" flag, not the status code.
type Web3FormsClient struct {
	url       string
	accessKey string
	opts      Options
}

func NewWeb3FormsClient(url, accessKey string, opts Options) *Web3FormsClient {
	return &Web3FormsClient{url: url, accessKey: accessKey, opts: opts}
}

func (c *Web3FormsClient) Submit(ctx context.Context, form Form) error {
	client := c.opts.httpClient()
	log := c.opts.logger()

	payload := make(Form, 0, len(form)+1)
	payload.Add("access_key", c.accessKey)
	payload = append(payload, form...)

	return run(c.opts.Breaker, func() error {
		status, raw, err := post(ctx, client, c.url, payload)
		if err != nil {
			log.Warn("forms api request failed", zap.Error(err))
			return err
		}

		var result web3FormsResult
		if err := json.Unmarshal(raw, &result); err != nil {
			log.Warn("forms api answered with invalid json", zap.Int("status", status), zap.Error(err))
			return &RejectionError{Status: status}
		}
		if !result.Success {
			log.Warn("forms api rejected submission", zap.Int("status", status), zap.String("message", result.Message))
			return &RejectionError{Status: status, Message: result.Message}
		}
		return nil
	})
}
