package validation

const (
	photoPattern    = `(?i)^https?://\S+\.(png|jpg|jpeg|gif|svg)$`
	linkedInPattern = `^https?://([A-Za-z0-9-]+\.)*linkedin\.com/.*$`
	githubPattern   = `^https?://([A-Za-z0-9-]+\.)*github\.com/.*$`
)

func score(name, label string) *Node {
	return Float(name, label).With(Range(0, 100))
}

func school(name, label string, stream bool) *Node {
	fields := []*Node{}
	if stream {
		fields = append(fields,
			String("stream", "Stream").Require().With(Literal("MPC").Msg(`Stream must be "MPC".`)),
		)
	}
	fields = append(fields,
		String("institutionName", "Institution name").Require(),
		String("boardName", "Board name").Require(),
	)
	if !stream {
		fields = append(fields, String("specialization", "Specialization"))
	}
	fields = append(fields,
		String("state", "State").Require(),
		String("city", "City").Require(),
		Date("startDate", "Start date").Require(),
		Date("endDate", "End date").Require(),
		score("mathScore", "Math score"),
		score("physicsScore", "Physics score"),
		score("chemistryScore", "Chemistry score"),
	)
	return Object(name, label, fields...).Require()
}

func degree(name, label string, ongoing bool) *Node {
	fields := []*Node{
		String("institutionName", "Institution name"),
		String("university", "University"),
		String("specialization", "Specialization"),
		String("state", "State"),
		String("city", "City"),
		Date("startDate", "Start date"),
		Date("endDate", "End date"),
		score("cgpa", "CGPA"),
	}
	if ongoing {
		fields = append(fields, Boolean("ongoing", "Ongoing"))
	}
	return Object(name, label, fields...)
}

func shortList(name, label, entry string) *Node {
	return List(name, label,
		String("", entry).Require(),
	).With(MaxItems(6))
}

// ResumeDetailsSchema describes the resume-details record: required personal,
// contact and schooling sections, optional degree stages, and repeatable
// sections of which the three short lists are capped at six entries.
func ResumeDetailsSchema() *Schema {
	return &Schema{
		Name: "resumeDetails",
		Root: Object("", "Request body",
			Object("personalInformation", "Personal information",
				String("photo", "Photo").With(
					Pattern(photoPattern).Msg("Photo must be an http(s) link to a png, jpg, jpeg, gif or svg image."),
				),
			),
			Object("basicInformation", "Basic information",
				String("firstName", "First name").Require(),
				String("middleName", "Middle name"),
				String("lastName", "Last name").Require(),
				String("currentDesignation", "Designation"),
				Object("address", "Address",
					String("addressLine", "Address line"),
					String("country", "Country").Require(),
					String("state", "State").Require(),
					String("city", "City").Require(),
					String("pincode", "Pincode").With(
						Pattern(`^\d{4,6}$`).Msg("Pincode must be 4 to 6 digits."),
					),
				).Require(),
				String("email", "Email").Require().With(
					Format("email").Msg("Please enter a valid email address."),
				),
				String("mobile", "Mobile number").Require().With(
					Pattern(`^\d{10}$`).Msg("Mobile number must be exactly 10 digits."),
				),
				String("linkedIn", "LinkedIn").With(
					Pattern(linkedInPattern).Msg("Please enter a valid LinkedIn URL"),
				),
				String("github", "GitHub").With(
					Pattern(githubPattern).Msg("Please enter a valid GitHub URL"),
				),
			).Require(),
			Object("summary", "Summary",
				String("summary", "Summary").Require(),
			).Require(),
			Object("education", "Education",
				school("ssc", "SSC", false),
				school("grades11And12", "Grades 11 and 12", true),
				degree("underGraduation", "Under graduation", false),
				degree("graduation", "Graduation", true),
			).Require(),
			List("certifications", "Certifications", Object("", "Certification",
				String("certificationName", "Certification name").Require(),
				String("certificationId", "Certification ID"),
				String("institute", "Institute"),
				String("year", "Year").With(
					Pattern(`^\d{4}$`).Msg("Year must be a valid 4-digit year."),
				),
			).Require()),
			List("internships", "Internships", Object("", "Internship",
				String("title", "Internship title").Require(),
				String("organization", "Organization"),
				String("location", "Location"),
				Date("startDate", "Start date"),
				Date("endDate", "End date"),
				String("paid", "Paid").With(
					OneOf("paid", "unpaid").Msg("Paid must be either 'paid' or 'unpaid'"),
				),
				Boolean("ongoing", "Ongoing"),
				String("description", "Description"),
			).Require()),
			List("projects", "Projects", Object("", "Project",
				String("name", "Project name").Require(),
				String("client", "Client"),
				Date("startDate", "Start date"),
				Date("endDate", "End date"),
				String("link", "Project link").With(
					Format("http_url").Msg("Please enter a valid project link"),
				),
				String("attachments", "Attachments"),
			).Require()),
			shortList("skills", "Skills", "Skill"),
			shortList("domainKnowledge", "Domain knowledge items", "Domain knowledge"),
			shortList("achievements", "Achievements", "Achievement"),
		).Require(),
	}
}
