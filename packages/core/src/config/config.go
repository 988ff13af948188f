package config

import (
	"github.com/sirupsen/logrus"

	"ngc-i18n/packages/core/src/sanitization"
	"ngc-i18n/packages/core/src/util"
)

// NameSet is a lower-cased allow-list of element or attribute names.
type NameSet interface {
	Has(name string) bool
}

// I18nConfig holds the collaborators the message compiler depends on.
type I18nConfig struct {
	Sanitizer         sanitization.Sanitizer
	AllowedElements   NameSet
	AllowedAttributes NameSet
	FragmentParser    sanitization.InertFragmentParser
	Logger            logrus.FieldLogger
}

// NewI18nConfig creates an I18nConfig with optional parameters.
func NewI18nConfig(opts ...I18nConfigOption) *I18nConfig {
	config := &I18nConfig{
		Sanitizer:         sanitization.DefaultSanitizer{},
		AllowedElements:   sanitization.ValidElements,
		AllowedAttributes: sanitization.ValidAttrs,
		FragmentParser:    sanitization.InertBodyHelper{},
		Logger:            util.Log,
	}

	for _, opt := range opts {
		opt(config)
	}

	return config
}

// I18nConfigOption is a function that modifies I18nConfig
type I18nConfigOption func(*I18nConfig)

// WithSanitizer sets the attribute sanitizer selection
func WithSanitizer(s sanitization.Sanitizer) I18nConfigOption {
	return func(c *I18nConfig) {
		c.Sanitizer = s
	}
}

// WithAllowedElements sets the elements a translation may create
func WithAllowedElements(set NameSet) I18nConfigOption {
	return func(c *I18nConfig) {
		c.AllowedElements = set
	}
}

// WithAllowedAttributes sets the attributes a translation may bind
func WithAllowedAttributes(set NameSet) I18nConfigOption {
	return func(c *I18nConfig) {
		c.AllowedAttributes = set
	}
}

// WithFragmentParser sets the parser used for ICU case markup
func WithFragmentParser(p sanitization.InertFragmentParser) I18nConfigOption {
	return func(c *I18nConfig) {
		c.FragmentParser = p
	}
}

// WithLogger sets the logger receiving compile diagnostics
func WithLogger(l logrus.FieldLogger) I18nConfigOption {
	return func(c *I18nConfig) {
		c.Logger = l
	}
}
