package notify

import (
	"fmt"
	"os"

	"github.com/denisbrodbeck/machineid"
)

// defaultClientID derives a stable MQTT client identity for this host
// so reconnects resume the same session slot on the broker. Falls back
// to the pid when the machine id is unavailable (e.g. containers).
func defaultClientID() string {
	id, err := machineid.ProtectedID("obsmon")
	if err != nil {
		return fmt.Sprintf("obsmon-%d", os.Getpid())
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return "obsmon-" + id
}
