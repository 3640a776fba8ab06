package validation

import "fmt"

// RegistrationSchema describes the registration profile. The branch rule is
// the only cross-field rule: branch can only be judged once course is known
// to be a valid key of the reference table.
func RegistrationSchema() *Schema {
	preferred := func(name, label, plural string) *Node {
		return List(name, label,
			String("", label).Require(),
		).With(MaxItems(3).Msg(fmt.Sprintf("You can select up to 3 preferred %s.", plural)))
	}

	return &Schema{
		Name: "registration",
		Root: Object("", "Request body",
			String("firstName", "First name").Require().With(Length(3, 20)),
			String("lastName", "Last name").Require().With(Length(3, 20)),
			String("collegeName", "College name").Require().With(Length(5, 50)),
			String("specialization", "Specialization").Require().With(
				OneOf("Undergraduate", "Postgraduate").
					Msg("Specialization must be either 'Undergraduate' or 'Postgraduate'"),
			),
			String("course", "Course").Require().With(CourseKey()),
			String("branch", "Branch").Require(),
			Integer("passOutYear", "Pass out year").Require().With(
				YearRange(1900, 10).
					Msg("Pass out year must not be before 1900").
					MsgHigh("Pass out year must be within a reasonable range"),
			),
			Float("cgpaOrPercentage", "CGPA or percentage").Require().With(Range(0, 100)),
			String("gender", "Gender").Require().With(
				OneOf("Male", "Female", "Other").
					Msg("Gender must be one of 'Male', 'Female', or 'Other'"),
			),
			String("githubProfile", "GitHub profile").Require().With(
				Format("url").Msg("GitHub profile must be a valid URL"),
			),
			String("linkedInProfile", "LinkedIn profile").Require().With(
				Format("url").Msg("LinkedIn profile must be a valid URL"),
			),
			preferred("jobPreferredCountries", "Preferred country", "countries"),
			preferred("jobPreferredStates", "Preferred state", "states"),
			preferred("jobPreferredCities", "Preferred city", "cities"),
			Date("dateOfBirth", "Date of birth"),
		).Require(),
		Rules: []Rule{
			{
				Field:     "branch",
				DependsOn: []string{"course"},
				Kind:      KindInvalidForCourse,
				Check: func(env RuleEnv) (bool, string) {
					course, branch := env.String("course"), env.String("branch")
					if env.Ref.HasBranch(course, branch) {
						return true, ""
					}
					return false, fmt.Sprintf("%s is not a valid branch for the selected course.", branch)
				},
			},
		},
	}
}
