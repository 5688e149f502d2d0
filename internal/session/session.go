// Package session drives a parking lot from a stream of command lines.
package session

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/kula-app/parking-lot/internal/command"
	"github.com/kula-app/parking-lot/internal/errors"
	"github.com/kula-app/parking-lot/internal/lot"
	"github.com/kula-app/parking-lot/internal/metrics"
	"github.com/kula-app/parking-lot/internal/transcript"
)

// Stats counts the lines a session has handled
type Stats struct {
	Processed int
	Rejected  int
	Invalid   int
}

// Session applies commands to a single lot, one line at a time
type Session struct {
	lot        *lot.Lot
	executor   *command.Executor
	transcript *transcript.Writer
	recorder   *metrics.Recorder
	logger     *slog.Logger
	stats      Stats
}

// New creates a session around the lot
func New(l *lot.Lot, executor *command.Executor, tw *transcript.Writer, recorder *metrics.Recorder, logger *slog.Logger) *Session {
	return &Session{
		lot:        l,
		executor:   executor,
		transcript: tw,
		recorder:   recorder,
		logger:     logger,
	}
}

// Stats returns the counts so far
func (s *Session) Stats() Stats {
	return s.stats
}

// Apply handles one input line. Blank lines and comments return a nil result.
// The returned error is set when the result is fatal or cannot be written.
func (s *Session) Apply(line string) (*command.Result, error) {
	cmd, err := command.Parse(line)
	if err != nil {
		s.logger.Warn("invalid command", "line", line, "error", err)
		res := command.Invalid(err)
		return &res, s.record(res)
	}
	if cmd == nil {
		return nil, nil
	}

	res := s.executor.Execute(cmd)
	if err := s.record(res); err != nil {
		return &res, err
	}
	if res.Fatal {
		s.logger.Error("halting session", "command", res.Label(), "error", res.Err)
		return &res, errors.InvalidCapacity(res.Err)
	}
	return &res, nil
}

func (s *Session) record(res command.Result) error {
	s.stats.Processed++
	switch res.Outcome {
	case command.OutcomeRejected:
		s.stats.Rejected++
	case command.OutcomeInvalid:
		s.stats.Invalid++
	}

	s.recorder.Observe(res.Label(), string(res.Outcome), s.lot.Occupancy())

	if err := s.transcript.Write(res); err != nil {
		return errors.Wrap(errors.ExitGeneralError, "failed to write transcript", err)
	}
	return nil
}

// Run applies every line of r until the input ends, ctx is cancelled or a
// result is fatal
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	startTime := time.Now()
	s.logger.Info("session started")

	err := s.run(ctx, r)

	occ := s.lot.Occupancy()
	s.logger.Info("session finished",
		"duration", time.Since(startTime),
		"processed", s.stats.Processed,
		"rejected", s.stats.Rejected,
		"invalid", s.stats.Invalid,
		"capacity", occ.Capacity,
		"occupied", occ.Occupied)

	return err
}

func (s *Session) run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++

		if _, err := s.Apply(scanner.Text()); err != nil {
			s.logger.Debug("session stopped", "line_no", lineNo)
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.InputError("failed to read commands", err)
	}
	return nil
}
