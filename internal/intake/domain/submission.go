package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Submission is one completed intake/application form.
type Submission struct {
	Name       string
	Email      string
	Company    string
	Website    string
	Goals      string
	Timeline   string
	Budget     string
	LeadSource string
	Services   []string
}

var Timelines = []string{"asap", "1-3 months", "3-6 months", "flexible"}

var Budgets = []string{"under-5k", "5k-10k", "10k-25k", "25k-plus"}

var LeadSources = []string{"referral", "search", "social", "other"}

var ServiceTags = []string{"website", "branding", "marketing", "development"}

func (s Submission) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("name is required")
	}
	email := strings.TrimSpace(s.Email)
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("a valid email is required")
	}
	if !contains(Timelines, s.Timeline) {
		return fmt.Errorf("unknown timeline %q", s.Timeline)
	}
	if !contains(Budgets, s.Budget) {
		return fmt.Errorf("unknown budget %q", s.Budget)
	}
	if !contains(LeadSources, s.LeadSource) {
		return fmt.Errorf("unknown lead source %q", s.LeadSource)
	}
	for _, tag := range s.Services {
		if !contains(ServiceTags, tag) {
			return fmt.Errorf("unknown service tag %q", tag)
		}
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
