// Package binder turns HTTP requests into form.Request values.
//
// FromRequest accepts urlencoded, multipart and flat JSON bodies:
//
//	req, err := binder.FromRequest(r)
//	if err != nil {
//		http.Error(w, err.Error(), http.StatusBadRequest)
//		return
//	}
//	ok := f.Init(req)
//
// Multipart boundaries are checked against RFC 2046 before parsing and the
// names of uploaded files are reduced to their base name. Errors wrap the
// package sentinels, so handlers can map them with errors.Is.
package binder
