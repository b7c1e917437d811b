package providers

import (
	"fmt"
	"regexp"
	"scorekeeper/internal/structures"

	"github.com/gookit/validate"
)

var unixPathRe = regexp.MustCompile(`^[^\x00]+$`)

func init() {
	validate.AddValidator("unixPath", func(val any) bool {
		s, ok := val.(string)
		return ok && unixPathRe.MatchString(s)
	})
}

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %w", v.Errors)
	}

	if cv.conf.Store.Driver == "firestore" && cv.conf.Store.ProjectID == "" {
		return fmt.Errorf("invalid config: store.projectId is required for the firestore driver")
	}
	if cv.conf.Store.Driver == "badger" && cv.conf.Store.DataDir == "" {
		return fmt.Errorf("invalid config: store.dataDir is required for the badger driver")
	}
	if cv.conf.Backup.Interval < 0 {
		return fmt.Errorf("invalid config: backup.interval must not be negative")
	}
	return nil
}
