package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"ngc-i18n/packages/core/src/util"
)

// Bundle is a $localize JSON translation file:
//
//	{"locale": "fr", "translations": {"<message id>": "<translation>"}}
type Bundle struct {
	raw string
}

// LoadBundle reads a bundle from a file or from an http(s) URL.
func LoadBundle(ctx context.Context, location string) (*Bundle, error) {
	var body []byte
	var err error
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		body, err = fetchBundle(ctx, location)
	} else {
		body, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("bundle %s is not valid JSON", location)
	}
	return &Bundle{raw: string(body)}, nil
}

// Locale returns the locale declared by the bundle, if any.
func (b *Bundle) Locale() string {
	return gjson.Get(b.raw, "locale").Str
}

// Message returns the translation of id.
func (b *Bundle) Message(id string) (string, error) {
	result := gjson.Get(b.raw, "translations."+escapePath(id))
	if !result.Exists() {
		return "", fmt.Errorf("no translation for message %q", id)
	}
	if result.Type != gjson.String {
		return "", fmt.Errorf("translation of message %q is not a string", id)
	}
	return result.Str, nil
}

// IDs returns the ids of every translation in the bundle.
func (b *Bundle) IDs() []string {
	var ids []string
	gjson.Get(b.raw, "translations").ForEach(func(key, _ gjson.Result) bool {
		ids = append(ids, key.String())
		return true
	})
	return ids
}

func escapePath(key string) string {
	var sb strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func fetchBundle(ctx context.Context, url string) ([]byte, error) {
	client := retryablehttp.NewClient()
	client.Logger = leveledLogger{util.Log}
	client.RetryMax = 3

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bundle %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch bundle %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// leveledLogger routes the retry client logs to logrus.
type leveledLogger struct {
	log logrus.FieldLogger
}

func (l leveledLogger) fields(keysAndValues []interface{}) logrus.FieldLogger {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.log.WithFields(fields)
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Error(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Warn(msg)
}
