package chatbot

import "github.com/secdash/kpi-backend/model"

// DefaultKnowledgeBase returns the built-in question/answer set. The list is
// small by design; matching is a linear scan over embeddings.
func DefaultKnowledgeBase() []model.KnowledgeBaseEntry {
	return []model.KnowledgeBaseEntry{
		{
			Question: "How can I improve my risk score?",
			Answer:   "Focus on addressing high-risk vulnerabilities with CVSS scores > 7, prioritize critical and high severity issues, and implement regular security assessments.",
			Category: "risk_management",
		},
		{
			Question: "What is my average closure time?",
			Answer:   "Your average closure time indicates how quickly you resolve security vulnerabilities. Reducing this time minimizes risk exposure and improves security posture.",
			Category: "performance",
		},
		{
			Question: "How can I reduce vulnerabilities?",
			Answer:   "Implement automated scanning, regular security training, proactive patch management, and establish a vulnerability prioritization framework.",
			Category: "prevention",
		},
		{
			Question: "What are critical vulnerabilities?",
			Answer:   "Critical vulnerabilities have CVSS scores of 9.0-10.0 and pose immediate threats. They require immediate remediation within 24-72 hours.",
			Category: "severity",
		},
		{
			Question: "How to prioritize vulnerabilities?",
			Answer:   "Prioritize by severity (Critical > High > Medium > Low), business impact, asset criticality, and exploit availability. Address critical issues first.",
			Category: "prioritization",
		},
		{
			Question: "What is CVSS score?",
			Answer:   "CVSS (Common Vulnerability Scoring System) rates vulnerability severity from 0-10. Scores 9.0-10.0 are Critical, 7.0-8.9 are High, 4.0-6.9 are Medium, 0.1-3.9 are Low.",
			Category: "metrics",
		},
	}
}
