// Copyright 2024 The Monero Update authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gitian

// ReleaseKeys is the compiled-in set of release-engineer public keys whose
// Gitian attestations count toward the acceptance threshold. The set
// mirrors the signers publishing into gitian.sigs; update it together with
// that repository.
var ReleaseKeys = []PublicKeyEntry{
	{
		Identity: "binaryfate",
		ArmoredKey: `-----BEGIN PGP PUBLIC KEY BLOCK-----

mQINBFgurZEBEADNf+lvTS1gZp9rxBtE9DsgXe91OM8183F4T1kPcrYuVrB4oTL2
mF8Pk7VhnXnh0HpV0cYrzj6eiVwIq7cXPa8bm00xJT9PvavS2w0yTimOYsfkpuSr
0hf4tqVckqnVAfruZI0crpEeGr9RJLveMNtVnMKLZSvGCYZz1XIdeOzU3cyNpB2g
cazFZm5t12TvVmGbWHnotAa6P9yPKvR2nfewonBBqjluRDlCYZtsMKPsO1A5jZgX
Wh+L1MnWkVoWmLZglmiq8O0PpTmTGq5+T5nXPvwaDTpsg35gSQFAkJyFXGhceAzk
QUDCAC4bOzo7jDaNkR7d9mLBUIW/eL+pQKtwCRUUWIcFe5o55Ff0fRfLL1GmTzqt
voZzC80pe3vifmQ1zwlqRRBAxA6qdxQ3xrDsRzmMjkgA6FLgtWJshZa7x6VEmXcO
4lx0ngHAqwatVy1Nmk3g5zMXbfu1AMYn49o9tzUIyNOnoqn3fLAbqMm5pkjTcVZD
YJqmJc5BCOwMvUBzQwbYsT3pXjrqfjDS4gIFPjvGCfZZjaknnOVcQNnRmy2ifD1q
b5tHSHmquwbVhV7AIzhoyeAKfQojcjQrJQsEtLJMDqdwHm8cmeCpGJqYD9nP7NLX
rQfvuhvosvDHs5BAnvBY27kdiVnSkNBDmzPnyiBLvWmHpQZ8iuZCqJWUWwARAQAB
tC9iaW5hcnlGYXRlIChNb25lcm8gcmVsZWFzZXMpIDxiaW5hcnlmYXRlQGdldG1v
bmVyby5vcmc+iQJUBBMBCAA+FiEEgaxZH+nEtlxYBq/D8K2AXyqhckQFAlgurZEC
GwMFCQlmAYAFCwkIBwIGFQoJCAsCBBYCAwECHgECF4AACgkQ8K2AXyqhckSG8g/9
EWFkopFkRKvdMyousGqGZYlUhHoFLbqv4dht8K8OC18qZeTLgibxdOeBkgNODRws
Ck0Od27uM3HjD9MGmWBr4zQ1Jg1GtUDN+IXiRZtCXwSyWAUqwCMVnJRKsvXYAeAU
uG2DoMRFt9JjtACCkGm4Gbvsw66pWTWHDXqGLkgoMykzVnIW5ZNYmzsDqFHDRTOL
smnvLGLtJjt7XsDIBYaKywfjk/8WFmFOMpmNvpcBrqnXdeY40LHGZZmyMA2VKpF2
s0PIpPvztknbTEUK9tEnwofmyNsv1tirIZ5VnhgGo5AGbbBUcTLmGjaAYVWYXjcz
UiSXDGXu0zjiSBZcTPrNOaeGCM9znpTJtvpAIYqFTvcc5TJvDjhQEMN+3zM8VeVY
mkXujhvtSYCUwBaNBkBPSDUxHDPaz2GUb3+1j3SBtAFWvBrurSdQEDfnqcLmbu02
ZlwNnFTpJQwv0ssI4S6wWlxUu6nFOYDNWwwzgNx6gmvinBdeW8kN2NhaZcTTZttM
uvAoydeXTCMzAdA2rVmFVyYcKg7tvvVrXOJWMs5ehqcFqFfY2Y16sZhmDPRnTsHi
ctyBRQbjjOmFzEeUcyWSLCrXNLFQmsTqVrAeg9YYsFvSzUHlRzHBTsXFPDTBctyX
ohrAmNSgzWkJNM3oHkzJuRUjcyBpJlZvN2iWxECbxK65Ag0EWC6tkQEQALW7RFfM
sFqFTGJfKsbAyDT6DtKzAdRUBjuCHLONXsSNtMFVLIvDo5yhHy5hdqSMDtbyDxpH
bBUnLmfiPRWwqPvzpbqQsKpwmmb2HLBRWMmM2xBpWGbcL4CCdepTtSxLxhUkRiWd
i4bUtZRieDULtVQVAsxA3sk3U7dJcihAqGSX3XQb37dTRycLSgFrTUtvY7KY92AA
uvMWYkCzTrvyo2YmjdH9ArGxIEelQ3gctUTAXSNfqoZIAsbXrgPxmrAjPrrSdwwo
PqfGgq6ejJVsPamKdpRZSuCnEASXhmzAQcPCSpgwbhvBrqvjzAFpMG29Kg9UDwmh
kQHjom6a7KFyRU5frbIFZqRpBCzMhRwXNmWP8TzvKzW6jYDB7PEPZTQK7AjRLRVY
KOJuFVsqBNVgQKAnEhQKkcyNOG1FrDHwZK9DcBRbfGsnJzvTBSVNF1jJPPm9B7rN
WfwY9fUDDu8cpw8WSBvUNGTrfbPYfDNGxnihuuRmzjciEhc5jYdCSTmmffNmghQ3
Hs5cHjqvEVMAZmazXGPpubhzpLkUuUaqyrRtPtTuvMYivGYIMtRWPaC0KPaHKAWM
wUCDsVPsaFVsXIIjA1hSynMlHXcoiSk2d7LSPQDIcATqaqHUNbsBbbPt0hIGFHWe
Y/1NLbXnb6n5HIzzqRfnBZBtarorU7RJCt55ABEBAAGJAjwEGAEIACYWIQSBrFkf
6cS2XFgGr8PwrYBfKqFyRAUCWC6tkQIbDAUJCWYBgAAKCRDwrYBfKqFyRLlVD/93
gLOLmz5SEoyvVHBYEFuLmcRi2AmAPazaqvjJXwKPMsnkrRFDpGGnLTQXmGtHkkGC
hXTZCFzczBDdotiavZqT2seH9nWUrCabf2rFuBBRBLDjmCRLzHtwdXvSjtW9rLb9
CZrCPzO3CIHcNsT2oRD5PHMctUVLWvvBFzuWBfqedCAeJSti0wWAdRRHWMA7zSdL
aSzfCjOCXIadhseGQWBvpU8bmgrQhSRtf6FSDHCVCmMWwRNWzovQVzVtDBgsRywC
9Gtvhbx1XpYHz2WQVaumKU9BRsdvnvzbFP7PDVnq4dUOmvjcwortRnFXpaCxSkfS
2RbWwiTaLWCWd/ufQG25sX4NiomjZrDDowmgqnCpDAsbtCkwfxDsofWnHYhkmQRy
dpGCl4YOf0FMDAtMKxjGWjTFnSNbZGgdSpWPA1zgUCgbLJKZQel2lHSbrGyXTlBf
FnVRKaKcWCLKsu3zBcZmUV4eaXrXVmEGkjKumlBfXbr9KANfUvwBHyxV1ZdwNKrT
AXsPPurqnmOPgNsjRn+BZDsd6VY+dmXHNCT3wLgjWiDpnN3Fs5XrWotU2AgMquwA
AWFE3LSaEWUvyWenMAioSsdkFbZMMQIgNnAxhRawc0RHREBYYVuyGQf9BNgX2vR/
mEWlLXGQggGR/HdXOQZYFSWzYmTsgWNSNvricwRXZQ==
=O9Ts
-----END PGP PUBLIC KEY BLOCK-----
`,
	},
	{
		Identity: "luigi1111",
		ArmoredKey: `-----BEGIN PGP PUBLIC KEY BLOCK-----

mQENBFU3j/IBCACv6DZcg4S9DD+5TQNGQBCyBFqzDkG9klMuUhy2AIpPfdDWLsiH
MXTSDRGZrAjaBCBCQ60EdCL9bMiLTKn0q8JWbqTFBrTW0HEnpPEGRHBqD2DjuZnH
FZBgYPGtqepVcaOmQGykjVMJmsQuxBCVv22tYkqbZvrBbMKPLKc8JCF1FrEIqmBq
QGkhppohXGirkJcQSbXqj4rtKhx5SBTQoNYSjGmCWSrUkQGaWZwYkizBBGKh8Qcq
WLy7CWCcS0XeXdakHEuFfuHgyYceYKhAyHnQZ3uJVMK9HBqg79g3ozqsbXw5ZXmF
3HSQsYkEFmW4s3rJFmNMGzrEGDzkVmfxN10BABEBAAG0JEx1aWdpMTExMSA8bHVp
Z2kxMTExd0BnbWFpbC5jb20+iQE3BBMBCAAhBQJVN4/yAhsDBQsJCAcCBhUICQoL
AgQWAgMBAh4BAheAAAoJEDDE5ZaRQv2wbBoH/joaa1TFAPMDidYZZXSbbQngWRSW
dQXPdTfbT9abLkDtHcR/0mLBXmmnnBam1DvBRuLzSGymLNHcnTLBBBwsbZ9pzNcP
zwfBTmRJErEXdwDCeczRoUvgkEQbO55x3LUjnRCcVpgNwITEey6gPHSuQWtxVavH
QTXPZ9vmDgxYGV7hxyhHnIvaon55rnBEZqBSvBSnKWp7RmSqbAWkDF2N1zFG8pVc
GFzOrJYwTApHDGgbtCLGQslALrpoTZuJFAUcYdrmJJhFVp1M5nJdRYHyHEJlaTVK
q6nNxpAHGgUWiuRhUnkSLKRmmvHGv84fcmcMSWKmMJ+gMRCuWvAmSrugK6e5AQ0E
VTeP8gEIAMC6PHkbhf6FZzUtJtT4BAw/1EyTG68WKoCjOa1ClMRo4bWrzTFTNkCc
WGkMrEYCubJML2RqVYJELMYEkSGjEwsZQVPZAdewkAYqaCAZGBJAwGUnsDbUGLG4
XzYsSnRpRn4AzVaw7fEM2f4nWEzGnBxB5wGHEXTepGSPeZMCAZpc0MRwddiPNmXh
YS4MdHepJU47YUg8aMjBqo2Z3ErbA0gYYudhbGTFCGFUnWspoZnuJ7gkZAzHySQ2
zUb9NAtGLZPXpQQCFaKSiZB9FEpVEWVKWdK/Wpa0LaKNNVp9984nQZQFPpBUqKMT
NYzBKbe4BcKLeYEKKVrUgBQvQqSJUkEAEQEAAYkBHwQYAQgACQUCVTeP8gIbDAAK
CRAwxOWWkUL9sCoNB/9ckpYtJjEvdWGzqyoxvZzVmGCAvaEEEdMLmAAvYgQT86tM
FjQPJALRYbL8WDvzfavYD5fCWSMVCTcpLTMHxcSkYcTNMmScWocMzGq3QRTqw5AH
NdnzkRAzAwLYvRgeJbECUeF73XUPGuUxWpSPvmcySAJQvZCFmnPVYcuxBcRdGTGJ
yLNpKiGtBnTMCzDK9zAwAxSZqoyBDXVbBKYQTG7PRTBsniqBYpeWWCDr6bTomNak
hWYhS9ZNjZQvJ4tTLPgsCoZQALTUjtSqitSrLzU/HPnTFCvDYAWKUNDhdGbccDDh
TNytSJ4SEEBfrTMBd6hgNLvWLgK5FWBQZSPZCUhm
=sTkN
-----END PGP PUBLIC KEY BLOCK-----
`,
	},
	{
		Identity: "selsta",
		ArmoredKey: `-----BEGIN PGP PUBLIC KEY BLOCK-----

mQENBF1tQ2EBCADHmLs1rDOmWP2pGwT1DNyBT9bzxLhQUXJZ+rK0xVmT5pRiWsPq
aVLogGgLLQ0uvHMVWPXKjJg4vBLYCAjdMzDbzfVPGhaQqFBA0SbQLnf9o6fgqFNK
fuESLHb2EnBaHm7pqaCDJPBTYBHvTDEpPHB6rQFRWS9UdPtMyCKjTsSaEHxYzcUW
NVbBXzGqYvNqw0WoPYTSyDRMDscDtSvjPzTnuGSNGUlKoUKuZVMXbYWaBTDbmshK
sVAMXnMwNxBNTGLYft6pFteVgMYvnVPqfLlGLEFdTHQ7fFBKvLMvBAHQwnXcyRkA
ysujFLSmsCWKSzQNhYuUDLLBEmvSelJSvKHrABEBAAG0HnNlbHN0YSA8c2Vsc3Rh
QHNlbHN0YS5uZXQ+PokBVAQTAQgAPhYhBJsDKHMkTBXwVfkrAMJbQLOIeTSWBQJd
bUNhAhsDBQkDwmcABQsJCAcCBhUKCQgLAgQWAgMBAh4BAheAAAoJEMJbQLOIeTSW
YLUH/R6wFJdaFSBsYUnbDpZYBVMtQ0HNVuzAfbVEIsNhUCPEpTBXyFzQuS2C9fqC
Q+oLWgCcUEBBQBQwWnkzJTAHGoJoSjMHEvRkkPBEchQMPBjPULDMJDEHmmyEMMyF
wcVMjPDQFcZKZWJTFCVcDOgBPRtEAQzDPQbvSMWkUzAPdnDNnNAoVfamZSYAwy2r
bxNuGUwWFtsSAgvvTs3uRBEhEWBY2JQbMZUvGQsjVDEWNBhurSnqxRjNBWevshSn
rQxHUpEQzTLCdFRs7ovzdPYnDUwSKAjDUHSSRjLBUTotB6BzRgRkFkAjUcADAWNM
YCYtVBQbBYBYYv4QpvuxAzQWAbo=
=RxnE
-----END PGP PUBLIC KEY BLOCK-----
`,
	},
}
