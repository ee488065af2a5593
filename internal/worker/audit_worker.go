package worker

import (
	"github.com/spec-kit/case-report-service/internal/service"
)

// StartAuditWorker registers audit handlers. Handlers run synchronously on
// the dispatching goroutine; this is registration, not a background loop.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
