package obs

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type pgxSpanKey struct{}

// PGXTracer implements pgx.QueryTracer with one client span per statement.
// Statements maps known SQL text to a stable span name; anything else is
// named after its table and operation.
type PGXTracer struct {
	Statements map[string]string
}

// TraceQueryStart starts a span for the statement.
func (t PGXTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	op, table := sqlTarget(data.SQL)
	name := t.Statements[data.SQL]
	if name == "" {
		name = spanName(op, table)
	}
	ctx, span := otel.Tracer("devtools.db").Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
	attrs := []attribute.KeyValue{
		attribute.String("db.system", "postgresql"),
		attribute.String("db.statement", truncateSQL(data.SQL)),
		attribute.String("db.operation", op),
	}
	if table != "" {
		attrs = append(attrs, attribute.String("db.sql.table", table))
	}
	span.SetAttributes(attrs...)
	return context.WithValue(ctx, pgxSpanKey{}, span)
}

// TraceQueryEnd ends the span. A lookup that finds no row is not an error.
func (PGXTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	span, ok := ctx.Value(pgxSpanKey{}).(trace.Span)
	if !ok {
		return
	}
	if data.Err != nil && !errors.Is(data.Err, pgx.ErrNoRows) {
		span.RecordError(data.Err)
		span.SetStatus(codes.Error, data.Err.Error())
	} else {
		span.SetAttributes(attribute.Int64("db.rows_affected", data.CommandTag.RowsAffected()))
	}
	span.End()
}

// sqlTarget returns the lowercased leading keyword of stmt and the table
// named after FROM, INTO or UPDATE.
func sqlTarget(stmt string) (op, table string) {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return "", ""
	}
	op = strings.ToLower(fields[0])
	for i := 0; i < len(fields)-1; i++ {
		switch strings.ToUpper(fields[i]) {
		case "FROM", "INTO", "UPDATE":
			return op, strings.Trim(fields[i+1], `"(`)
		}
	}
	return op, ""
}

func spanName(op, table string) string {
	switch {
	case op == "":
		return "pgx.query"
	case table == "":
		return "pgx." + op
	default:
		return table + "." + op
	}
}

func truncateSQL(sql string) string {
	trimmed := strings.TrimSpace(sql)
	if len(trimmed) > 300 {
		return trimmed[:300] + "..."
	}
	return trimmed
}
