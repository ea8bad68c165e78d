package domain

// Department is the human team an email is routed to.
type Department string

const (
	DepartmentSales           Department = "sales"
	DepartmentService         Department = "service"
	DepartmentAccounting      Department = "accounting"
	DepartmentWarehouse       Department = "warehouse"
	DepartmentCustomerService Department = "customer_service"
)

var departmentRouting = map[Intent]Department{
	IntentPartsOrder:      DepartmentSales,
	IntentServiceInquiry:  DepartmentService,
	IntentInvoiceRequest:  DepartmentAccounting,
	IntentInventoryCheck:  DepartmentSales,
	IntentComplaint:       DepartmentCustomerService,
	IntentTransferRequest: DepartmentWarehouse,
	IntentGeneralInquiry:  DepartmentCustomerService,
}

// DepartmentFor resolves for every intent string, declared or not.
func DepartmentFor(intent Intent) Department {
	if dept, ok := departmentRouting[intent]; ok {
		return dept
	}
	return DepartmentCustomerService
}
