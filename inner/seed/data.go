package seed

// DepartmentSeed отдел и вилка зарплат для его сотрудников
type DepartmentSeed struct {
	Name        string
	Description string
	Titles      []string
	SalaryMin   int
	SalaryMax   int
}

var Departments = []DepartmentSeed{
	{
		Name: "Engineering", Description: "Software and platform", SalaryMin: 90000, SalaryMax: 180000,
		Titles: []string{"Frontend Developer", "Backend Developer", "Fullstack Developer", "DevOps Engineer",
			"QA Engineer", "SRE", "Engineering Manager", "Data Engineer"},
	},
	{
		Name: "Human Resources", Description: "People operations", SalaryMin: 60000, SalaryMax: 110000,
		Titles: []string{"HR Generalist", "Recruiter", "HRBP", "People Ops Specialist"},
	},
	{
		Name: "Finance", Description: "Accounting and FP&A", SalaryMin: 65000, SalaryMax: 120000,
		Titles: []string{"Accountant", "Financial Analyst", "AP/AR Specialist", "Payroll Specialist"},
	},
	{
		Name: "Sales", Description: "Revenue and accounts", SalaryMin: 55000, SalaryMax: 150000,
		Titles: []string{"Account Executive", "SDR", "Sales Manager", "Solutions Consultant"},
	},
	{
		Name: "Support", Description: "Customer support", SalaryMin: 45000, SalaryMax: 90000,
		Titles: []string{"Support Specialist", "Support Lead", "Technical Support Engineer"},
	},
	{
		Name: "Operations", Description: "Business ops & IT", SalaryMin: 55000, SalaryMax: 110000,
		Titles: []string{"IT Specialist", "Office Manager", "Operations Analyst", "Procurement Specialist"},
	},
}

var Cities = []string{"Chicago", "Austin", "Seattle", "New York", "Denver", "San Jose", "Remote"}

var ManagerEmails = []string{"ivy.manager@example.com", "lee.manager@example.com", "kim.manager@example.com"}

const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
	// доля сотрудников, которым назначается руководитель
	managerShare = 40
)
