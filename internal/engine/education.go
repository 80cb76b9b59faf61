package engine

import (
	"strings"

	"github.com/resumatch/resumatch/internal/model"
	"github.com/resumatch/resumatch/internal/nlp"
)

// Ordinal degree levels: none < high school < associate < bachelor <
// master < doctorate.
const (
	levelNone = iota
	levelHighSchool
	levelAssociate
	levelBachelor
	levelMaster
	levelDoctorate
)

// pointsPerLevel is the linear penalty for each degree level the resume
// falls short of the stated requirement.
const pointsPerLevel = 25.0

var degreeKeywords = []struct {
	level int
	terms []string
}{
	{levelDoctorate, []string{"phd", "ph.d", "doctorate", "doctoral", "doctor of philosophy"}},
	{levelMaster, []string{"master", "masters", "master's", "mba", "m.b.a", "msc", "m.s", "m.a"}},
	{levelBachelor, []string{"bachelor", "bachelors", "bachelor's", "bsc", "b.s", "b.a", "btech", "b.tech", "undergraduate"}},
	{levelAssociate, []string{"associate degree", "associates degree", "associate's"}},
	{levelHighSchool, []string{"high school", "secondary school", "ged"}},
}

// educationScore compares the resume's highest attained degree to any
// requirement stated in the posting. No stated requirement is the normal
// case and scores 100; a shortfall loses pointsPerLevel per missing
// ordinal level, floored at 0. Unrecognized degree strings rank as none
// rather than erroring.
func (e *Engine) educationScore(resume *model.ResumeProfile, posting *model.JobPosting) float64 {
	required := requiredDegreeLevel(posting)
	if required == levelNone {
		return 100
	}

	attained := levelNone
	for _, edu := range resume.Education {
		if l := degreeLevel(edu.Degree); l > attained {
			attained = l
		}
	}

	if attained >= required {
		return 100
	}

	score := 100 - float64(required-attained)*pointsPerLevel
	if score < 0 {
		return 0
	}
	return score
}

// requiredDegreeLevel parses the posting's requirements text for degree
// keywords. When several levels are mentioned ("bachelor's required,
// master's preferred") the lowest one is taken as the hard requirement.
func requiredDegreeLevel(posting *model.JobPosting) int {
	norm := " " + nlp.Normalize(posting.Requirements) + " "
	lowest := levelNone
	for _, group := range degreeKeywords {
		for _, term := range group.terms {
			if strings.Contains(norm, " "+nlp.Normalize(term)+" ") {
				if lowest == levelNone || group.level < lowest {
					lowest = group.level
				}
				break
			}
		}
	}
	return lowest
}

func degreeLevel(degree string) int {
	norm := " " + nlp.Normalize(degree) + " "
	if strings.TrimSpace(norm) == "" {
		return levelNone
	}
	for _, group := range degreeKeywords {
		for _, term := range group.terms {
			if strings.Contains(norm, " "+nlp.Normalize(term)+" ") {
				return group.level
			}
		}
	}
	return levelNone
}
