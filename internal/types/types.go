// Package types holds the normalized records that leave the validator and
// reach storage. Keeping them in one place prevents import cycles:
// validation, storage, profile and the HTTP handlers all import types
// without depending on each other.
//
// Struct tags:
//
//  1. json:"..." controls the HTTP and embedded-store representation.
//  2. bson:"..." controls the document-store representation. The names are
//     identical to the JSON ones; field names and nesting are the durable
//     contract other systems read.
//
// Optional scalars are pointers. A nil pointer is the explicit "no value"
// marker and is stored as null rather than being omitted.
package types

import "time"

// EntityKind names a record kind (and its collection/table) in storage.
type EntityKind string

const (
	KindRegistration  EntityKind = "users"
	KindResumeDetails EntityKind = "userresumedetails"
)

// Registration is a student's registration profile.
type Registration struct {
	FirstName             string     `json:"firstName"             bson:"firstName"`
	LastName              string     `json:"lastName"              bson:"lastName"`
	CollegeName           string     `json:"collegeName"           bson:"collegeName"`
	Specialization        string     `json:"specialization"        bson:"specialization"`
	Course                string     `json:"course"                bson:"course"`
	Branch                string     `json:"branch"                bson:"branch"`
	PassOutYear           int        `json:"passOutYear"           bson:"passOutYear"`
	CgpaOrPercentage      float64    `json:"cgpaOrPercentage"      bson:"cgpaOrPercentage"`
	Gender                string     `json:"gender"                bson:"gender"`
	GithubProfile         string     `json:"githubProfile"         bson:"githubProfile"`
	LinkedInProfile       string     `json:"linkedInProfile"       bson:"linkedInProfile"`
	JobPreferredCountries []string   `json:"jobPreferredCountries" bson:"jobPreferredCountries"`
	JobPreferredStates    []string   `json:"jobPreferredStates"    bson:"jobPreferredStates"`
	JobPreferredCities    []string   `json:"jobPreferredCities"    bson:"jobPreferredCities"`
	DateOfBirth           *time.Time `json:"dateOfBirth"           bson:"dateOfBirth"`
}

// ResumeDetails is the multi-section resume a student submits once.
// It is looked up afterwards by BasicInformation.Email.
type ResumeDetails struct {
	// ID is assigned by storage and is not part of the stored document body.
	ID string `json:"id,omitempty" bson:"-"`

	PersonalInformation PersonalInformation `json:"personalInformation" bson:"personalInformation"`
	BasicInformation    BasicInformation    `json:"basicInformation"    bson:"basicInformation"`
	Summary             Summary             `json:"summary"             bson:"summary"`
	Education           Education           `json:"education"           bson:"education"`
	Certifications      []Certification     `json:"certifications"      bson:"certifications"`
	Internships         []Internship        `json:"internships"         bson:"internships"`
	Projects            []Project           `json:"projects"            bson:"projects"`
	Skills              []string            `json:"skills"              bson:"skills"`
	DomainKnowledge     []string            `json:"domainKnowledge"     bson:"domainKnowledge"`
	Achievements        []string            `json:"achievements"        bson:"achievements"`
}

type PersonalInformation struct {
	Photo *string `json:"photo" bson:"photo"`
}

type BasicInformation struct {
	FirstName          string  `json:"firstName"          bson:"firstName"`
	MiddleName         *string `json:"middleName"         bson:"middleName"`
	LastName           string  `json:"lastName"           bson:"lastName"`
	CurrentDesignation *string `json:"currentDesignation" bson:"currentDesignation"`
	Address            Address `json:"address"            bson:"address"`
	Email              string  `json:"email"              bson:"email"`
	Mobile             string  `json:"mobile"             bson:"mobile"`
	LinkedIn           *string `json:"linkedIn"           bson:"linkedIn"`
	Github             *string `json:"github"             bson:"github"`
}

type Address struct {
	AddressLine *string `json:"addressLine" bson:"addressLine"`
	Country     string  `json:"country"     bson:"country"`
	State       string  `json:"state"       bson:"state"`
	City        string  `json:"city"        bson:"city"`
	Pincode     *string `json:"pincode"     bson:"pincode"`
}

type Summary struct {
	Summary string `json:"summary" bson:"summary"`
}

// Education groups the four schooling stages. SSC and Grades11And12 are
// mandatory; the two degree stages are nil when not submitted.
type Education struct {
	SSC             School  `json:"ssc"             bson:"ssc"`
	Grades11And12   School  `json:"grades11And12"   bson:"grades11And12"`
	UnderGraduation *Degree `json:"underGraduation" bson:"underGraduation"`
	Graduation      *Degree `json:"graduation"      bson:"graduation"`
}

// School is a secondary-school stage. Stream is only set for grades 11/12.
type School struct {
	Stream          *string   `json:"stream,omitempty" bson:"stream,omitempty"`
	InstitutionName string    `json:"institutionName"  bson:"institutionName"`
	BoardName       string    `json:"boardName"        bson:"boardName"`
	Specialization  *string   `json:"specialization"   bson:"specialization"`
	State           string    `json:"state"            bson:"state"`
	City            string    `json:"city"             bson:"city"`
	StartDate       time.Time `json:"startDate"        bson:"startDate"`
	EndDate         time.Time `json:"endDate"          bson:"endDate"`
	MathScore       *float64  `json:"mathScore"        bson:"mathScore"`
	PhysicsScore    *float64  `json:"physicsScore"     bson:"physicsScore"`
	ChemistryScore  *float64  `json:"chemistryScore"   bson:"chemistryScore"`
}

// Degree is an optional university stage. Ongoing is only meaningful for
// graduation.
type Degree struct {
	InstitutionName *string    `json:"institutionName"   bson:"institutionName"`
	University      *string    `json:"university"        bson:"university"`
	Specialization  *string    `json:"specialization"    bson:"specialization"`
	State           *string    `json:"state"             bson:"state"`
	City            *string    `json:"city"              bson:"city"`
	StartDate       *time.Time `json:"startDate"         bson:"startDate"`
	EndDate         *time.Time `json:"endDate"           bson:"endDate"`
	Cgpa            *float64   `json:"cgpa"              bson:"cgpa"`
	Ongoing         *bool      `json:"ongoing"           bson:"ongoing"`
}

type Certification struct {
	CertificationName string  `json:"certificationName" bson:"certificationName"`
	CertificationID   *string `json:"certificationId"   bson:"certificationId"`
	Institute         *string `json:"institute"         bson:"institute"`
	Year              *string `json:"year"              bson:"year"`
}

type Internship struct {
	Title        string     `json:"title"        bson:"title"`
	Organization *string    `json:"organization" bson:"organization"`
	Location     *string    `json:"location"     bson:"location"`
	StartDate    *time.Time `json:"startDate"    bson:"startDate"`
	EndDate      *time.Time `json:"endDate"      bson:"endDate"`
	Paid         *string    `json:"paid"         bson:"paid"`
	Ongoing      *bool      `json:"ongoing"      bson:"ongoing"`
	Description  *string    `json:"description"  bson:"description"`
}

type Project struct {
	Name        string     `json:"name"        bson:"name"`
	Client      *string    `json:"client"      bson:"client"`
	StartDate   *time.Time `json:"startDate"   bson:"startDate"`
	EndDate     *time.Time `json:"endDate"     bson:"endDate"`
	Link        *string    `json:"link"        bson:"link"`
	Attachments *string    `json:"attachments" bson:"attachments"`
}
