package internal

import (
	"log"
	"os"
	"os/user"
	"regexp"
	"sort"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
)

var sensitiveRegex = regexp.MustCompile(`(?i)(PASSWORD|API_KEY|ACCESS_KEY|SECRET|TOKEN)`)

func ShowVersion() {
	log.Printf("Version: %s", versioninfo.Short())
}

// EnvironmentVars logs the variables whose name starts with prefix, masking
// anything that looks like a credential.
func EnvironmentVars(prefix string) {
	vars := make([]string, 0)
	for _, entry := range os.Environ() {
		if strings.HasPrefix(entry, prefix) {
			vars = append(vars, entry)
		}
	}
	sort.Strings(vars)

	log.Printf("Environment variables (%s*)", prefix)
	for _, entry := range vars {
		key, value, _ := strings.Cut(entry, "=")
		if sensitiveRegex.MatchString(key) {
			value = "********"
		}
		log.Printf("  %s: %s", key, value)
	}
}

// UserInfo logs who the process runs as, since files are rewritten in place.
func UserInfo() {
	currentUser, err := user.Current()
	if err != nil {
		log.Printf("PID: %d, error getting current user: %v", os.Getpid(), err)
		return
	}
	log.Printf("PID: %d, user: uid=%s(%s) gid=%s", os.Getpid(), currentUser.Uid, currentUser.Username, currentUser.Gid)
}
