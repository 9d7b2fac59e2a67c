package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/radar/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "row",
			ID:       "acme-widget-2025-06-01",
		}
		assert.Equal(t, "row with ID acme-widget-2025-06-01 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("feed", "openai-news")
		assert.Equal(t, "feed with ID openai-news not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("row", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "company",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field company: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid candidate",
		}
		assert.Equal(t, "validation failed: invalid candidate", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("status", "Rumored", "not a recognized status")
		assert.Contains(t, err.Error(), "status")
		assert.Contains(t, err.Error(), "not a recognized status")
	})
}

func TestStoreError(t *testing.T) {
	t.Run("load", func(t *testing.T) {
		base := errors.New("record on line 3: wrong number of fields")
		err := &pkgerrors.StoreError{
			Op:   "load",
			Path: "data/products.csv",
			Err:  base,
		}
		assert.Contains(t, err.Error(), "load")
		assert.Contains(t, err.Error(), "data/products.csv")
		assert.True(t, errors.Is(err, pkgerrors.ErrStoreLoad))
		assert.False(t, errors.Is(err, pkgerrors.ErrStoreSave))
		assert.Equal(t, base, err.Unwrap())
	})

	t.Run("save", func(t *testing.T) {
		err := pkgerrors.NewStoreError("save", "data/products.csv", errors.New("disk full"))
		assert.True(t, pkgerrors.IsStoreSave(err))
		assert.False(t, pkgerrors.IsStoreLoad(err))
	})

	t.Run("wrap helper", func(t *testing.T) {
		err := pkgerrors.WrapStore("load", "products.csv", errors.New("bad header"))
		storeErr, ok := err.(*pkgerrors.StoreError)
		require.True(t, ok)
		assert.Equal(t, "load", storeErr.Op)
		assert.Equal(t, "products.csv", storeErr.Path)

		assert.Nil(t, pkgerrors.WrapStore("save", "products.csv", nil))
	})
}

func TestFeedError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := &pkgerrors.FeedError{
			Feed:       "OpenAI News",
			URL:        "https://openai.com/news/rss.xml",
			StatusCode: 503,
			Err:        errors.New("service unavailable"),
		}
		assert.Contains(t, err.Error(), "OpenAI News")
		assert.Contains(t, err.Error(), "503")
		assert.True(t, errors.Is(err, pkgerrors.ErrFeedUnavailable))
	})

	t.Run("without status code", func(t *testing.T) {
		base := errors.New("connection refused")
		err := pkgerrors.NewFeedError("Google AI Blog", "https://blog.google/rss", 0, base)
		assert.Contains(t, err.Error(), "Google AI Blog")
		assert.NotContains(t, err.Error(), "status")
		assert.Equal(t, base, err.Unwrap())
	})

	t.Run("wrap helper", func(t *testing.T) {
		err := pkgerrors.WrapFeed("AWS ML Blog", "https://aws.amazon.com/blogs/machine-learning/feed/", errors.New("timeout"))
		feedErr, ok := err.(*pkgerrors.FeedError)
		require.True(t, ok)
		assert.Equal(t, "AWS ML Blog", feedErr.Feed)
		assert.True(t, pkgerrors.IsFeedError(err))

		assert.Nil(t, pkgerrors.WrapFeed("feed", "url", nil))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.ConfigError{
			Component: "digest",
			Message:   "window_days: must be positive",
		}
		assert.Contains(t, err.Error(), "digest")
		assert.Contains(t, err.Error(), "window_days")
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewConfigError("feeds", "registry file cannot be empty", nil)
		assert.Contains(t, err.Error(), "feeds")
		assert.Contains(t, err.Error(), "cannot be empty")
	})
}

func TestIOError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.IOError{
			Operation: "rename",
			Path:      "/data/products.csv.tmp",
			Message:   "permission denied",
			Err:       errors.New("permission denied"),
		}
		assert.Contains(t, err.Error(), "rename")
		assert.Contains(t, err.Error(), "/data/products.csv.tmp")
		assert.Contains(t, err.Error(), "permission denied")
	})

	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/daily_2025-06-01.md", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
	})

	t.Run("wrap helper", func(t *testing.T) {
		baseErr := errors.New("no such directory")
		err := pkgerrors.WrapIO("create", "/data/digests", baseErr)
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "create", ioErr.Operation)
		assert.Equal(t, "/data/digests", ioErr.Path)

		assert.Nil(t, pkgerrors.WrapIO("read", "file", nil))
	})
}

func TestParseError(t *testing.T) {
	t.Run("with file and line", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "csv",
			File:    "products.csv",
			Line:    10,
			Message: "wrong number of fields",
		}
		assert.Contains(t, err.Error(), "csv")
		assert.Contains(t, err.Error(), "products.csv:10")
		assert.Contains(t, err.Error(), "wrong number of fields")
	})

	t.Run("with file only", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "yaml",
			File:    "feeds.yaml",
			Message: "invalid indentation",
		}
		assert.Contains(t, err.Error(), "yaml")
		assert.Contains(t, err.Error(), "feeds.yaml")
	})

	t.Run("constructor and wrap", func(t *testing.T) {
		baseErr := errors.New("EOF")
		err := pkgerrors.NewParseError("xml", "feed.xml", "unexpected end", baseErr)
		assert.Contains(t, err.Error(), "xml")
		assert.Equal(t, baseErr, err.Unwrap())

		wrapped := pkgerrors.WrapParse("csv", "products.csv", baseErr)
		parseErr, ok := wrapped.(*pkgerrors.ParseError)
		require.True(t, ok)
		assert.Equal(t, "csv", parseErr.Format)
		assert.Equal(t, "products.csv", parseErr.File)
	})
}

func TestAPIError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := &pkgerrors.APIError{
			Service:    "gemini",
			StatusCode: 429,
			Message:    "rate limit exceeded",
		}
		assert.Contains(t, err.Error(), "gemini")
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("with wrapped error", func(t *testing.T) {
		baseErr := errors.New("connection timeout")
		err := &pkgerrors.APIError{
			Service: "gemini",
			Message: "request failed",
			Err:     baseErr,
		}
		assert.Equal(t, baseErr, err.Unwrap())
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewAPIError("gemini", 500, "internal server error")
		assert.Contains(t, err.Error(), "500")
	})
}

func TestErrorChaining(t *testing.T) {
	t.Run("multiple wrapping", func(t *testing.T) {
		baseErr := errors.New("connection refused")
		ioErr := pkgerrors.WrapIO("connect", "openai.com", baseErr)
		feedErr := &pkgerrors.FeedError{
			Feed: "OpenAI News",
			Err:  ioErr,
		}

		assert.Equal(t, ioErr, feedErr.Unwrap())

		var targetIOErr *pkgerrors.IOError
		assert.True(t, errors.As(feedErr, &targetIOErr))
		assert.Equal(t, "connect", targetIOErr.Operation)
	})

	t.Run("store wraps io", func(t *testing.T) {
		ioErr := pkgerrors.WrapIO("rename", "products.csv.tmp", errors.New("busy"))
		storeErr := pkgerrors.WrapStore("save", "products.csv", ioErr)

		assert.True(t, pkgerrors.IsStoreSave(storeErr))
		var targetIOErr *pkgerrors.IOError
		assert.True(t, errors.As(storeErr, &targetIOErr))
	})
}

func TestHelperFunctions(t *testing.T) {
	t.Run("IsAlreadyExists", func(t *testing.T) {
		assert.True(t, pkgerrors.IsAlreadyExists(pkgerrors.ErrAlreadyExists))
		assert.False(t, pkgerrors.IsAlreadyExists(errors.New("already exists")))
	})

	t.Run("IsTimeout", func(t *testing.T) {
		assert.True(t, pkgerrors.IsTimeout(pkgerrors.ErrTimeout))
		assert.False(t, pkgerrors.IsTimeout(pkgerrors.ErrCanceled))
	})

	t.Run("IsCanceled", func(t *testing.T) {
		assert.True(t, pkgerrors.IsCanceled(pkgerrors.ErrCanceled))
	})

	t.Run("WrapValidation", func(t *testing.T) {
		err := pkgerrors.WrapValidation("window_days", errors.New("cannot be negative"))
		require.NotNil(t, err)
		assert.Contains(t, err.Error(), "window_days")
		assert.Contains(t, err.Error(), "cannot be negative")

		// nil error returns nil
		assert.Nil(t, pkgerrors.WrapValidation("field", nil))
	})
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", pkgerrors.ErrNotFound},
		{"ErrAlreadyExists", pkgerrors.ErrAlreadyExists},
		{"ErrInvalidInput", pkgerrors.ErrInvalidInput},
		{"ErrStoreLoad", pkgerrors.ErrStoreLoad},
		{"ErrStoreSave", pkgerrors.ErrStoreSave},
		{"ErrFeedUnavailable", pkgerrors.ErrFeedUnavailable},
		{"ErrAPIKeyRequired", pkgerrors.ErrAPIKeyRequired},
		{"ErrTimeout", pkgerrors.ErrTimeout},
		{"ErrCanceled", pkgerrors.ErrCanceled},
	}

	for _, tc := range sentinels {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotNil(t, tc.err)
			assert.NotEmpty(t, tc.err.Error())
		})
	}
}
