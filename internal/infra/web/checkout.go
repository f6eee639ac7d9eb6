package web

import (
	"html/template"
	"net/http"

	"razorpay-checkout/internal/domain/model"
)

// checkoutTmpl bootstraps the gateway's hosted checkout UI and carries the
// same-origin return form it submits on completion. Cancelling sends the
// customer back here with payment_error set.
var checkoutTmpl = template.Must(template.New("checkout").Parse(`<!doctype html>
<html>
  <head>
    <title>Checkout</title>
    <meta name="viewport" content="user-scalable=no,width=device-width,initial-scale=1,maximum-scale=1">
    <meta http-equiv="pragma" content="no-cache">
    <meta http-equiv="cache-control" content="no-cache">
    <style>
      body{font-family:ubuntu,helvetica,verdana,sans-serif;font-size:14px;text-align:center;color:#414141;padding-top:40px;line-height:24px;background:#fff}
      input[type=button]{font-family:inherit;padding:12px 20px;border-radius:2px;border:0;width:124px;margin:0 5px;color:#fff;cursor:pointer;-webkit-appearance:none}
      .danger{background-color:#EF6050}
      .success{background-color:#61BC6D}
      .error{color:#EF6050}
    </style>
    <script src="https://checkout.razorpay.com/v1/checkout.js"></script>
    <script>
      var options = {
        "key": {{.Session.KeyID}},
        "amount": {{.Session.AmountMinor}},
        "name": {{.Session.MerchantName}},
        "currency": {{.Session.Currency}},
        "order_id": {{.Session.RemoteOrderID}},
        "handler": function (response) {
          document.getElementById("razorpay_payment_id").value = response.razorpay_payment_id;
          document.getElementById("razorpay_order_id").value = response.razorpay_order_id;
          document.getElementById("razorpay_signature").value = response.razorpay_signature;
          document.getElementById("razorpay").submit();
        },
        "modal": {
          "ondismiss": function () { window.location.href = {{.RetryURL}}; }
        },
        "prefill": {
          "name": {{.Session.CustomerName}},
          "email": {{.Session.CustomerEmail}}
        },
        "notes": {
          "platform_order_id": {{.Session.LocalOrderID}}
        }
      };
      var rzp = new Razorpay(options);
      rzp.open();

      function openRazorpay() { rzp.open(); }
      function cancel() { window.location.href = {{.RetryURL}}; }
    </script>
  </head>
  <body>
    <h3>Payment</h3>
    {{if .PaymentError}}<p class="error">Payment failed. Please try again.</p>{{end}}
    Please wait...<br>
    <p>
      <input type="button" value="Pay" onclick="openRazorpay()" class="success">
      <input type="button" value="Cancel" onclick="cancel()" class="danger">
    </p>
    <form action="{{.CallbackPath}}" method="POST" id="razorpay">
      <input type="hidden" name="merchant_order_id" value="{{.Session.LocalOrderID}}">
      <input type="hidden" name="razorpay_payment_id" id="razorpay_payment_id">
      <input type="hidden" name="razorpay_order_id" id="razorpay_order_id">
      <input type="hidden" name="razorpay_signature" id="razorpay_signature">
      <input type="hidden" name="gateway" value="razorpay_gateway">
    </form>
  </body>
</html>`))

type checkoutPageData struct {
	Session      *model.CheckoutSession
	CallbackPath string
	RetryURL     string
	PaymentError bool
}

func (s *Server) renderCheckout(w http.ResponseWriter, session *model.CheckoutSession, paymentError bool) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := checkoutPageData{
		Session:      session,
		CallbackPath: CallbackPath,
		RetryURL:     s.checkoutURL,
		PaymentError: paymentError,
	}
	if err := checkoutTmpl.Execute(w, data); err != nil {
		s.log.Error().Err(err).Msg("checkout template render failed")
	}
}
