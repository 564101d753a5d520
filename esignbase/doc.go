// Package esignbase is a client for the eSignBase electronic-signature API.
//
// A client is built from Credentials, connected once with Connect, and then
// used for any number of resource calls. Each call is one synchronous HTTPS
// round trip that reuses the cached access token.
//
//	client, err := esignbase.NewOAuth2Client(esignbase.Credentials{
//	    ClientID:     "client-id",
//	    ClientSecret: "client-secret",
//	    GrantType:    oauth2.ClientCredentialsGrant,
//	    Scopes:       []esignbase.Scope{esignbase.ScopeRead, esignbase.ScopeCreateDocument},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := client.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	templates, err := client.GetTemplates(ctx)
//
// # Errors
//
// Every failure is an *Error whose Kind tells configuration problems,
// rejected token requests, calls made before Connect, non-2xx API answers
// and connectivity failures apart:
//
//	if esignbase.IsKind(err, esignbase.KindAPI) && esignbase.StatusCode(err) == http.StatusNotFound {
//	    // unknown document
//	}
//
// # Notes
//
//   - Tokens are never refreshed. Call Connect again to replace the cached token.
//   - Nothing is retried. A 401 from a resource endpoint is returned as KindAPI.
//   - An OAuth2Client is not safe for concurrent use.
package esignbase
