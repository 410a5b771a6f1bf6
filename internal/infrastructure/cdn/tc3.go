package cdn

import (
	"encoding/hex"
	"strconv"
	"time"
)

// TC3-HMAC-SHA256 request signing, shared by the Tencent CDN and EdgeOne
// adapters. https://cloud.tencent.com/document/api/228/30978
const (
	tc3Algorithm   = "TC3-HMAC-SHA256"
	tc3ContentType = "application/json; charset=utf-8"
)

// tc3Authorization computes the Authorization header for a POST to "/" with
// the given payload at time t.
func tc3Authorization(keyID, keySecret, host, service, payload string, t time.Time) string {
	date := t.UTC().Format("2006-01-02")

	canonicalHeaders := "content-type:" + tc3ContentType + "\n" + "host:" + host + "\n"
	signedHeaders := "content-type;host"
	canonicalRequest := "POST" + "\n" +
		"/" + "\n" +
		"" + "\n" +
		canonicalHeaders + "\n" +
		signedHeaders + "\n" +
		sha256Hex(payload)

	credentialScope := date + "/" + service + "/tc3_request"
	stringToSign := tc3Algorithm + "\n" +
		strconv.FormatInt(t.Unix(), 10) + "\n" +
		credentialScope + "\n" +
		sha256Hex(canonicalRequest)

	signature := hex.EncodeToString(hmacSHA256(tc3SigningKey(keySecret, date, service), stringToSign))

	return tc3Algorithm +
		" Credential=" + keyID + "/" + credentialScope +
		", SignedHeaders=" + signedHeaders +
		", Signature=" + signature
}

// tc3SigningKey derives the signing key through the three chained HMAC steps:
// "TC3"+secret over the date, then the service, then "tc3_request".
func tc3SigningKey(keySecret, date, service string) []byte {
	secretDate := hmacSHA256([]byte("TC3"+keySecret), date)
	secretService := hmacSHA256(secretDate, service)
	return hmacSHA256(secretService, "tc3_request")
}

