// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// LearningResource describes how to pick up a skill
type LearningResource struct {
	LearningPath  string   `json:"learning_path"`
	Resources     []string `json:"resources"`
	EstimatedTime string   `json:"estimated_time"`
}

// learningResources is keyed by lower-cased skill name
var learningResources = map[string]LearningResource{
	"kubernetes": {
		LearningPath:  "Container orchestration for cloud-native applications",
		Resources:     []string{"Kubernetes.io docs", "CKAD certification", "KodeKloud"},
		EstimatedTime: "2-3 months",
	},
	"docker": {
		LearningPath:  "Containerization fundamentals",
		Resources:     []string{"Docker official docs", "Docker Captain tutorials"},
		EstimatedTime: "2-4 weeks",
	},
	"aws": {
		LearningPath:  "Cloud computing with Amazon Web Services",
		Resources:     []string{"AWS Free Tier", "AWS Certified Cloud Practitioner"},
		EstimatedTime: "1-2 months",
	},
	"terraform": {
		LearningPath:  "Infrastructure as Code",
		Resources:     []string{"Terraform tutorials", "HashiCorp certification"},
		EstimatedTime: "3-4 weeks",
	},
	"python": {
		LearningPath:  "General-purpose programming language",
		Resources:     []string{"Python.org tutorial", "Real Python", "Codecademy"},
		EstimatedTime: "2-3 months",
	},
	"react": {
		LearningPath:  "Modern frontend development with React",
		Resources:     []string{"React.dev", "Scrimba", "Frontend Masters"},
		EstimatedTime: "1-2 months",
	},
	"typescript": {
		LearningPath:  "Type-safe JavaScript development",
		Resources:     []string{"TypeScript Handbook", "Execute Program"},
		EstimatedTime: "2-4 weeks",
	},
	"graphql": {
		LearningPath:  "Modern API query language",
		Resources:     []string{"GraphQL.org", "Apollo tutorials"},
		EstimatedTime: "2-3 weeks",
	},
	"machine learning": {
		LearningPath:  "AI and statistical modeling",
		Resources:     []string{"Coursera ML course", "fast.ai", "Kaggle"},
		EstimatedTime: "3-6 months",
	},
	"postgresql": {
		LearningPath:  "Advanced relational database",
		Resources:     []string{"PostgreSQL docs", "pgexercises.com"},
		EstimatedTime: "3-4 weeks",
	},
}

// LookupLearningResource returns the curated resource for a skill, matched case-insensitively
func LookupLearningResource(skill string) (LearningResource, bool) {
	res, ok := learningResources[strings.ToLower(strings.TrimSpace(skill))]
	return res, ok
}

// GenericLearningResource is offered for skills without a curated entry
func GenericLearningResource(skill string) LearningResource {
	return LearningResource{
		LearningPath:  "Develop proficiency in " + skill,
		Resources:     []string{"Online courses", "Documentation", "Practice projects"},
		EstimatedTime: "Varies",
	}
}

// MaxUpskillingItems caps recommendations per match
const MaxUpskillingItems = 5

// UpskillingDetail is a structured learning suggestion for a missing skill
type UpskillingDetail struct {
	Skill      string `json:"skill"`
	Importance string `json:"importance"`
	LearningResource
}
