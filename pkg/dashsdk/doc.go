/*
Package dashsdk is a client for the holidash HTTP API.

	client := dashsdk.NewSDKClient("http://localhost:8080")

	// Check a login attempt
	user, err := client.Login(ctx, "jane@example.com", "hunter2")
	if dashsdk.IsCode(err, dashsdk.ErrorCodeAuthenticationFailed) {
		fmt.Println("Authentication failed")
	}

	// Dashboard data
	greeting, err := client.Greeting(ctx)
	series, err := client.Holidays(ctx, "AU")

# Error Handling

Non-2xx responses are returned as *APIError carrying the HTTP status and the
error code from the body. The same type is used by the server to write them,
so codes always round-trip.
*/
package dashsdk
