package ai

import (
	"context"
	"log"
)

// Turn is one prior message in a conversation.
type Turn struct {
	Role    string // store.SenderUser or store.SenderBot
	Content string
}

// TextProvider generates a completion for a conversation. Implementations
// return errors carrying an HTTP-like status so the retry wrapper can
// classify them.
type TextProvider interface {
	Name() string
	Complete(ctx context.Context, system string, history []Turn, message string) (string, error)
}

// FallbackChain runs the primary provider under the retry wrapper and, when
// it is exhausted or fails fatally, tries the fallback the same way.
type FallbackChain struct {
	Primary  TextProvider
	Fallback TextProvider
	Retry    RetryConfig
	Logger   *log.Logger
}

func (c *FallbackChain) Name() string {
	if c.Fallback == nil {
		return c.Primary.Name()
	}
	return c.Primary.Name() + "+" + c.Fallback.Name()
}

func (c *FallbackChain) Complete(ctx context.Context, system string, history []Turn, message string) (string, error) {
	out, err := c.callProvider(ctx, c.Primary, system, history, message)
	if err == nil {
		return out, nil
	}
	if c.Fallback == nil {
		return "", err
	}
	if c.Logger != nil {
		c.Logger.Printf("provider %s failed (%v), falling back to %s", c.Primary.Name(), err, c.Fallback.Name())
	}
	return c.callProvider(ctx, c.Fallback, system, history, message)
}

func (c *FallbackChain) callProvider(ctx context.Context, p TextProvider, system string, history []Turn, message string) (string, error) {
	out, err := CallWithRetry(ctx, c.Retry, func(ctx context.Context) (string, error) {
		return p.Complete(ctx, system, history, message)
	})
	if err != nil {
		requestsTotal.WithLabelValues(p.Name(), "error").Inc()
		return "", err
	}
	requestsTotal.WithLabelValues(p.Name(), "ok").Inc()
	return out, nil
}
