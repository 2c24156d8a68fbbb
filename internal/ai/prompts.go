package ai

import "fmt"

// DefaultSystemPrompt is the reviewer persona sent as the system instruction.
const DefaultSystemPrompt = `You are a professional resume expert and career coach writing in UK English. Your principles are:

- Give honest, constructive feedback grounded only in what the resume actually says
- Never invent experience or skills the candidate does not claim
- Ignore formatting artifacts, page numbers and hyperlinks left over from file conversion
- Keep the tone encouraging but direct

Your expertise includes:
- ATS (Applicant Tracking System) optimization
- Quantifying achievements and impact
- Matching resume content to target roles`

// DefaultUserPromptTemplate formats the resume and the target job title into
// the opinion request. Placeholders: resume text, job title.
const DefaultUserPromptTemplate = `Please review the resume below for a candidate applying for the role of "%[2]s".

Write a short expert opinion (at most three paragraphs) covering:

1. How well the resume supports an application for this role
2. The two or three most impactful improvements the candidate should make
3. Anything that could hurt the resume in an automated screening

Respond in plain prose, in UK English. Do not repeat the resume back.

**Resume:**
-----
%[1]s
-----`

// BuildOpinionPrompt returns the formatted user prompt for an opinion request.
func BuildOpinionPrompt(resumeText, jobTitle string) string {
	return fmt.Sprintf(DefaultUserPromptTemplate, resumeText, jobTitle)
}
