package logger

import "go.uber.org/zap"

// AuditLog records a schema change with structured fields.
// event: short identifier (e.g. "collection_created", "index_ensured")
// actor: database user or host performing the change
// fields: additional key-value context pairs
func AuditLog(event, actor string, fields ...zap.Field) {
	base := []zap.Field{
		zap.String("audit_event", event),
		zap.String("actor", actor),
	}
	RawLogger.With(base...).Info("AUDIT", fields...)
}
