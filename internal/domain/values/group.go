package values

import (
	"fmt"
	"strings"
)

// Group is the provider grouping a Pattern belongs to.
type Group string

const (
	GroupAI       Group = "ai"
	GroupCloud    Group = "cloud"
	GroupPayments Group = "payments"
	GroupVCS      Group = "vcs"
	GroupInfra    Group = "infra"
	GroupDatabase Group = "database"
	GroupComms    Group = "comms"
	GroupCustom   Group = "custom"
)

var validGroups = map[Group]bool{
	GroupAI: true, GroupCloud: true, GroupPayments: true, GroupVCS: true,
	GroupInfra: true, GroupDatabase: true, GroupComms: true, GroupCustom: true,
}

// NewGroup validates a group string.
func NewGroup(s string) (Group, error) {
	g := Group(strings.ToLower(strings.TrimSpace(s)))
	if !validGroups[g] {
		return "", fmt.Errorf("invalid pattern group: %q", s)
	}
	return g, nil
}

func (g Group) String() string { return string(g) }
