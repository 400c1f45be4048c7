package email

const (
	subjectDemoConfirmation = "Demo Request Confirmed - Framtt Car Rental Management"
	subjectSalesAlertFmt    = "New Demo Request - %s - %s"
)
