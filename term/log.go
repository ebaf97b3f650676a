package term

import (
	"context"
	"fmt"
	"log/slog"
)

// slogTerm wraps a Term as a slog.LogValuer to not render term strings
// unless they definitely need to be logged
func slogTerm(t Term) slog.LogValuer { return termLogValuer{t} }
func slogRaw(r Raw) slog.LogValuer   { return rawLogValuer{r} }

type termLogValuer struct{ Term }
type rawLogValuer struct{ Raw }

func (l termLogValuer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("str", l.Term.String()),
		slog.String("hash", fmt.Sprintf("%x", Hash(l.Term))),
	)
}
func (l rawLogValuer) LogValue() slog.Value { return slog.StringValue(l.Raw.String()) }

// TermSlogHandler is a slog.Handler capable of lazy-printing terms
func TermSlogHandler(underlying slog.Handler) slog.Handler {
	return &termLogHandler{underlying: underlying}
}

type termLogHandler struct {
	underlying slog.Handler
}

func (l *termLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return l.underlying.Enabled(ctx, level)
}

func (l *termLogHandler) Handle(ctx context.Context, record slog.Record) error {
	newRecord := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Value.Kind() == slog.KindAny {
			switch value := attr.Value.Any().(type) {
			case Term:
				newRecord.Add(attr.Key, slogTerm(value))
				return true
			case Raw:
				newRecord.Add(attr.Key, slogRaw(value))
				return true
			}
		}
		newRecord.Add(attr)
		return true
	})
	return l.underlying.Handle(ctx, newRecord)
}

func (l *termLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	for i, attr := range attrs {
		if attr.Value.Kind() == slog.KindAny {
			switch value := attr.Value.Any().(type) {
			case Term:
				attr.Value = slog.AnyValue(slogTerm(value))
			case Raw:
				attr.Value = slog.AnyValue(slogRaw(value))
			}
			attrs[i] = attr
		}
	}
	return TermSlogHandler(l.underlying.WithAttrs(attrs))
}

func (l *termLogHandler) WithGroup(name string) slog.Handler {
	return TermSlogHandler(l.underlying.WithGroup(name))
}
