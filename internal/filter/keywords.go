package filter

// Weighted keyword tables driving the rule scorer. Matching is
// case-insensitive substring containment, NOT word-boundary aware:
// a short keyword may match inside a longer word, and every matching
// keyword contributes independently. Changing either property changes
// accept rates, so the tables and the matcher must move together.

type weightedKeyword struct {
	Keyword string
	Weight  int
}

// Title signals

var titlePositive = []weightedKeyword{
	{"internship", 4},
	{"intern", 4},
	{"graduate", 3},
	{"new grad", 3},
	{"newgrad", 3},
	{"junior", 3},
	{"jr.", 3},
	{"fresher", 3},
	{"associate", 2},
	{"entry level", 2},
	{"entry-level", 2},
	{"trainee", 2},
	{"apprentice", 2},
	{"early career", 2},
	{"placement", 2},
	{"software engineer", 1},
	{"developer", 1},
	{"backend engineer", 1},
	{"frontend engineer", 1},
	{"full stack", 1},
	{"fullstack", 1},
	{"ai engineer", 1},
	{"ml engineer", 1},
	{"data engineer", 1},
	{"platform engineer", 1},
	{"devops engineer", 1},
	{"cloud engineer", 1},
	{"mobile engineer", 1},
	{"sre", 1},
	{"site reliability", 1},
}

var titleNegative = []weightedKeyword{
	{"senior", -6},
	{"sr.", -6},
	{"staff", -6},
	{"principal", -6},
	{"lead ", -6},
	{"tech lead", -6},
	{"architect", -6},
	{"manager", -6},
	{"director", -6},
	{"head of", -6},
	{"vp ", -6},
	{"vice president", -6},
	{"chief", -6},
	{"distinguished", -6},
	{"fellow", -5},
}

// JD text signals

var jdPositive = []weightedKeyword{
	{"internship", 3},
	{"intern program", 3},
	{"summer intern", 3},
	{"0-2 years", 2},
	{"0–2 years", 2},
	{"0 to 2 years", 2},
	{"new grad", 2},
	{"new graduate", 2},
	{"recent graduate", 2},
	{"fresh graduate", 2},
	{"fresher", 2},
	{"entry level", 1},
	{"entry-level", 1},
	{"early career", 1},
	{"no experience required", 2},
	{"0-1 years", 2},
	{"1-2 years", 1},
	{"graduate program", 2},
	{"graduate scheme", 2},
	{"campus hiring", 2},
	{"university hiring", 2},
}

var jdNegative = []weightedKeyword{
	{"5+ years", -4},
	{"6+ years", -4},
	{"7+ years", -4},
	{"8+ years", -5},
	{"10+ years", -5},
	{"technical leadership", -3},
	{"extensive experience", -3},
	{"own architecture decisions", -3},
	{"deep expertise", -3},
	{"proven track record", -2},
	{"managed a team", -4},
	{"team leadership", -3},
	{"people management", -4},
	{"p&l responsibility", -5},
	{"strategic direction", -4},
	{"10 years of experience", -5},
	{"8 years of experience", -5},
	{"7 years of experience", -4},
	{"5 years of experience", -4},
	{"minimum 5 years", -4},
	{"at least 5 years", -4},
}

// Sponsorship signals, scanned against the JD only

var sponsorshipPositive = []weightedKeyword{
	{"visa sponsorship available", 3},
	{"visa sponsorship", 2},
	{"sponsorship available", 2},
	{"we sponsor", 2},
	{"will sponsor", 2},
	{"able to sponsor", 2},
	{"happy to sponsor", 2},
	{"open to sponsoring", 2},
	{"sponsoring visas", 2},
	{"sponsorship provided", 2},
	{"visa support provided", 2},
	{"visa provided", 2},
	{"visa support", 1},
	{"relocation support", 1},
	{"relocation assistance", 1},
	{"relocation package", 1},
	{"relocation budget", 1},
	{"relocation covered", 1},
	{"we cover relocation", 1},
	{"visa costs covered", 1},
	{"work permit provided", 2},
	{"work visa", 1},
	{"global mobility", 1},
	{"visa assistance", 1},
	{"international candidates welcome", 2},
	{"international applicants", 1},
	{"worldwide applicants", 1},
	{"global applicants", 1},
}

var sponsorshipNegative = []weightedKeyword{
	{"no sponsorship", -5},
	{"cannot sponsor", -5},
	{"unable to sponsor", -5},
	{"not able to sponsor", -5},
	{"do not sponsor", -5},
	{"don't sponsor", -5},
	{"must have work authorization", -3},
	{"must be authorized", -3},
	{"must be eligible to work", -3},
	{"must have right to work", -3},
	{"proof of eligibility", -2},
	{"no visa support", -4},
	{"citizens only", -5},
	{"permanent residents only", -5},
	{"us citizens only", -5},
	{"no relocation", -2},
}

// India locations where sponsorship is a non-issue
var indiaKeywords = []string{
	"india", "bangalore", "bengaluru", "hyderabad", "pune",
	"chennai", "mumbai", "delhi", "noida", "gurgaon",
	"gurugram", "kolkata", "ahmedabad", "jaipur", "kochi",
}

var internshipTitleKeywords = []string{
	"intern",
	"internship",
	"trainee",
	"apprentice",
	"placement",
	"co-op",
	"coop",
}

// visa filter checks a shorter internship list than the experience filter
var visaInternKeywords = []string{"intern", "internship", "trainee", "apprentice"}
