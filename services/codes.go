package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

func randomUpper(n int) string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:n])
}

// generateTrxCode builds a globally unique, human-readable transaction
// code. The timestamp keeps codes sortable; the suffix guards against
// two bookings landing in the same second.
func generateTrxCode() string {
	return "TRX" + time.Now().Format("20060102150405") + randomUpper(6)
}

func generateMitraCode() string {
	return "MTR" + randomUpper(6)
}

func generateAPIKey() string {
	return uuid.NewString()
}
