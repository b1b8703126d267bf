package logging

import (
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestSetup(t *testing.T) {
	if got := Setup("warn").GetLevel(); got != log.WarnLevel {
		t.Errorf("level = %v, want warn", got)
	}
	if got := Setup("chatty").GetLevel(); got != log.DebugLevel {
		t.Errorf("level = %v, want debug fallback", got)
	}
}
