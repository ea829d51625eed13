package service

import "recruitment-buddy/internal/domain"

var seedMajors = []domain.MajorProfile{
	{
		ID:               "computer-science",
		Name:             "Computer Science",
		Description:      "Study of computation, algorithms and the design of software systems.",
		Careers:          []string{"Software Engineer", "Data Scientist", "Systems Architect"},
		Skills:           []string{"Programming", "Problem Solving", "Mathematics"},
		AnalyticalWeight: 0.9,
		CreativeWeight:   0.5,
		SocialWeight:     0.3,
		TechnicalWeight:  0.9,
	},
	{
		ID:               "mechanical-engineering",
		Name:             "Mechanical Engineering",
		Description:      "Design and analysis of machines, thermal systems and manufacturing processes.",
		Careers:          []string{"Mechanical Engineer", "Product Designer", "Manufacturing Engineer"},
		Skills:           []string{"Physics", "CAD", "Mathematics"},
		AnalyticalWeight: 0.8,
		CreativeWeight:   0.5,
		SocialWeight:     0.3,
		TechnicalWeight:  0.9,
	},
	{
		ID:               "psychology",
		Name:             "Psychology",
		Description:      "Scientific study of behavior, cognition and emotion.",
		Careers:          []string{"Counselor", "Clinical Psychologist", "HR Specialist"},
		Skills:           []string{"Empathy", "Research Methods", "Communication"},
		AnalyticalWeight: 0.6,
		CreativeWeight:   0.4,
		SocialWeight:     0.9,
		TechnicalWeight:  0.2,
	},
	{
		ID:               "fine-arts",
		Name:             "Fine Arts",
		Description:      "Practice and theory of visual art, from drawing to installation.",
		Careers:          []string{"Artist", "Illustrator", "Art Director"},
		Skills:           []string{"Drawing", "Visual Composition", "Art History"},
		AnalyticalWeight: 0.3,
		CreativeWeight:   1.0,
		SocialWeight:     0.4,
		TechnicalWeight:  0.3,
	},
	{
		ID:               "business-administration",
		Name:             "Business Administration",
		Description:      "Management, finance and strategy of organizations.",
		Careers:          []string{"Manager", "Consultant", "Entrepreneur"},
		Skills:           []string{"Leadership", "Negotiation", "Financial Analysis"},
		AnalyticalWeight: 0.6,
		CreativeWeight:   0.5,
		SocialWeight:     0.8,
		TechnicalWeight:  0.3,
	},
	{
		ID:               "nursing",
		Name:             "Nursing",
		Description:      "Patient care, clinical practice and health promotion.",
		Careers:          []string{"Registered Nurse", "Nurse Practitioner", "Public Health Nurse"},
		Skills:           []string{"Patient Care", "Biology", "Teamwork"},
		AnalyticalWeight: 0.5,
		CreativeWeight:   0.2,
		SocialWeight:     0.9,
		TechnicalWeight:  0.6,
	},
	{
		ID:               "graphic-design",
		Name:             "Graphic Design",
		Description:      "Visual communication through typography, imagery and digital media.",
		Careers:          []string{"Graphic Designer", "UX Designer", "Brand Strategist"},
		Skills:           []string{"Typography", "Design Software", "Visual Storytelling"},
		AnalyticalWeight: 0.4,
		CreativeWeight:   0.9,
		SocialWeight:     0.5,
		TechnicalWeight:  0.6,
	},
	{
		ID:               "mathematics",
		Name:             "Mathematics",
		Description:      "Abstract structures, proof and quantitative modeling.",
		Careers:          []string{"Actuary", "Statistician", "Quantitative Analyst"},
		Skills:           []string{"Proof Writing", "Statistics", "Modeling"},
		AnalyticalWeight: 1.0,
		CreativeWeight:   0.4,
		SocialWeight:     0.2,
		TechnicalWeight:  0.6,
	},
}

// seedAffinities: major id -> codigo de tipo -> fuerza. Los pares ausentes
// quedan en afinidad neutral.
var seedAffinities = map[string]map[string]float64{
	"computer-science":        {"INTJ": 0.9, "INTP": 0.9, "ENTJ": 0.7, "ISTJ": 0.7},
	"mechanical-engineering":  {"ISTJ": 0.8, "ISTP": 0.9, "INTJ": 0.7, "ESTP": 0.6},
	"psychology":              {"INFJ": 0.9, "INFP": 0.8, "ENFJ": 0.8, "ENFP": 0.7},
	"fine-arts":               {"ISFP": 0.9, "INFP": 0.8, "ENFP": 0.7},
	"business-administration": {"ENTJ": 0.9, "ESTJ": 0.9, "ENTP": 0.7, "ESFJ": 0.6},
	"nursing":                 {"ISFJ": 0.9, "ESFJ": 0.8, "ENFJ": 0.7},
	"graphic-design":          {"ENFP": 0.8, "ISFP": 0.8, "ENTP": 0.6},
	"mathematics":             {"INTP": 0.9, "INTJ": 0.8, "ISTJ": 0.6},
}
