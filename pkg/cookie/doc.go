// Package cookie writes plain and HMAC signed cookies with shared defaults
// (path "/", HttpOnly, SameSite=Lax).
//
//	m, err := cookie.New([]string{secret})
//	m.SetSigned(w, "page_id", id)
//	id, err := m.GetSigned(r, "page_id")
//
// Several secrets may be configured; the first signs and all verify.
package cookie
