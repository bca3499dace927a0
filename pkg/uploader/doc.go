// Package uploader delivers a finalized artifact set to the remote
// tuning endpoint.
//
// The wire format is one multipart/form-data POST: an upload_code form
// field plus four file parts named knobs, metrics_before, metrics_after,
// and summary. Transport retries are bounded and internal to the uploader;
// the capture flow itself never retries an upload.
package uploader
