// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package eventfd

import (
	"github.com/joeycumines/logiface"
)

// eventFDOptions holds configuration options for EventFD creation.
type eventFDOptions struct {
	logger       *logiface.Logger[logiface.Event]
	initialValue uint32
	closeOnExec  bool
}

// Option configures an EventFD, see [New] and [Scope].
type Option interface {
	applyEventFD(*eventFDOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyEventFDFunc func(*eventFDOptions) error
}

func (o *optionImpl) applyEventFD(opts *eventFDOptions) error {
	return o.applyEventFDFunc(opts)
}

// WithLogger attaches a structured logger, which receives lifecycle events
// (create, clone, close) at debug level, and leaked descriptors at warning
// level. Clones inherit the logger. A nil logger disables logging (default).
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *eventFDOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithInitialValue sets the initial counter value. Defaults to 0.
func WithInitialValue(value uint32) Option {
	return &optionImpl{func(opts *eventFDOptions) error {
		opts.initialValue = value
		return nil
	}}
}

// WithCloseOnExec sets whether the descriptor is closed across exec.
// Defaults to true. Disable it only when the descriptor is meant to be
// inherited by a child process at its existing number; [os/exec.Cmd]
// ExtraFiles duplicates descriptors and so works either way.
func WithCloseOnExec(enabled bool) Option {
	return &optionImpl{func(opts *eventFDOptions) error {
		opts.closeOnExec = enabled
		return nil
	}}
}

// resolveOptions applies Option instances to eventFDOptions.
func resolveOptions(opts []Option) (*eventFDOptions, error) {
	cfg := &eventFDOptions{
		closeOnExec: true,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyEventFD(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
