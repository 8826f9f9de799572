// Package sevenshifts is a client for the 7shifts REST API.
//
// The client authenticates with a bearer token, follows cursor
// pagination, throttles requests and turns error responses into typed
// errors that keep the response body:
//
//	client, err := sevenshifts.NewClient(tokens, sevenshifts.DefaultConfig())
//	shifts, err := client.ListShifts(ctx, companyID, domain.ShiftFilter{
//		LocationID: 1234,
//		StartGTE:   time.Now().AddDate(0, 0, -7),
//	})
//
// Reference data (companies, locations, departments, roles) is cached
// for a short time since a sync asks for it repeatedly.
package sevenshifts
