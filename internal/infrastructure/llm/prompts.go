package llm

import (
	"fmt"
	"strings"
)

const maxPostingChars = 20000

const jobExtractionPrompt = `You extract structured data from job postings.

Ignore navigation, footers, "similar jobs" lists and advertisements.
Return one JSON object and nothing else, no markdown fences.

Schema:
{
  "title": "job title",
  "company_name": "hiring company",
  "location": "city, country or \"Remote\"",
  "employment_type": "one of full_time, part_time, contract, internship",
  "description": "plain-text summary of responsibilities and requirements",
  "salary_range": "salary text if stated, otherwise null",
  "skills": ["technologies and skills named in the posting"]
}

If a field is missing set it to null. Do not guess.

Page title: %s

Content:
%s
`

func JobExtractionPrompt(title, text string) string {
	if len(text) > maxPostingChars {
		text = text[:maxPostingChars]
	}
	return fmt.Sprintf(jobExtractionPrompt, strings.TrimSpace(title), text)
}

const pitchPrompt = `You help a job seeker ask an employee for a referral.

Write a short, specific referral request (at most 150 words) addressed to an
employee of %s about the "%s" role. Use only facts below. Plain text, no
greeting placeholders, no subject line.

Candidate headline: %s
Years of experience: %d
Skills: %s
About: %s

Job description:
%s
`

type PitchInput struct {
	CompanyName     string
	JobTitle        string
	JobDescription  string
	Headline        string
	YearsExperience int
	Skills          []string
	Bio             string
}

func PitchPrompt(in PitchInput) string {
	desc := in.JobDescription
	if len(desc) > 4000 {
		desc = desc[:4000]
	}
	return fmt.Sprintf(pitchPrompt,
		in.CompanyName,
		in.JobTitle,
		in.Headline,
		in.YearsExperience,
		strings.Join(in.Skills, ", "),
		in.Bio,
		desc,
	)
}
