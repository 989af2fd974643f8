package service

import (
	"regexp"
	"strings"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
)

// tertiaryLevelPattern matches tertiary level names like "1L" or "200L".
var tertiaryLevelPattern = regexp.MustCompile(`\dL`)

// InferSchoolType guesses a school type from a class-level name. It is a
// compatibility shim for legacy rows whose class arm carries no explicit
// type; rows created through the current admission flow never reach it.
// Rules, in order:
//
//	"JSS" or "SS" in the name        -> SECONDARY
//	a digit followed by "L", or the  -> TERTIARY
//	word "Level"
//	"PRIMARY" or "BASIC" in the name -> PRIMARY
//	anything else                    -> unknown (empty)
func InferSchoolType(levelName string) models.SchoolType {
	name := strings.ToUpper(strings.TrimSpace(levelName))
	switch {
	case name == "":
		return ""
	case strings.Contains(name, "JSS") || strings.Contains(name, "SS"):
		return models.SchoolTypeSecondary
	case tertiaryLevelPattern.MatchString(name) || strings.Contains(name, "LEVEL"):
		return models.SchoolTypeTertiary
	case strings.Contains(name, "PRIMARY") || strings.Contains(name, "BASIC"):
		return models.SchoolTypePrimary
	default:
		return ""
	}
}

// matchesSchoolType applies the scope filter of a migration sweep or a
// notification audience. An explicit type on the linked level wins; the
// name heuristic decides otherwise. Rows with no signal at all are kept,
// since legacy unlinked data must not silently drop out of a sweep.
func matchesSchoolType(target, explicit models.SchoolType, levelName string) bool {
	if target == "" {
		return true
	}
	if explicit != "" {
		return explicit == target
	}
	inferred := InferSchoolType(levelName)
	if inferred == "" {
		return true
	}
	return inferred == target
}
