// Package transfer contains the transfer encodings a vCard attribute may
// declare with its ENCODING parameter. Only "b" (base64) changes the bytes
// between the stored value and the decoded value. Quoted-printable is decoded
// inline while the attribute is parsed, so by the time a value is stored it is
// already in its decoded form and is treated as-is here, just like RAW.
//
// For the sake of this package, "decoded" means the binary data the value
// represents and "encoded" means the text form stored on the attribute.
package transfer
