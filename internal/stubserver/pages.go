package stubserver

// Sample listing pages carry pre-stamped height measurements the way a
// browser-rendered snapshot would.

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Senior Backend Engineer | Sample Jobs</title></head>
<body>
	<nav data-rr-height="56">Jobs | Companies | Salaries</nav>
	<main data-rr-height="1800">
		<section data-rr-height="240">
			<h1 data-rr-height="40">Senior Backend Engineer</h1>
			<span data-rr-height="20">Acme Logistics &middot; Remote &middot; Full-time</span>
		</section>
		<section data-rr-height="1200">
			<h2 data-rr-height="32">About the job</h2>
			<div data-rr-height="8" class="divider"></div>
			<span data-rr-height="24">Posted 3 days ago</span>
			<div data-rr-height="900" class="description">
				Acme Logistics is hiring a Senior Backend Engineer to own our
				shipment-tracking platform. You will design Go services that ingest
				millions of carrier events per day, keep our Postgres fleet healthy,
				and move batch workloads onto Kafka. We care about operational
				excellence: you will carry a pager, tune dashboards, and make the
				system boring. Requirements: 5+ years building distributed systems,
				fluency in Go or Java, production experience with Kubernetes and
				Terraform, and the patience to mentor.
			</div>
		</section>
		<section data-rr-height="300">
			<h2 data-rr-height="32">About the company</h2>
			<div data-rr-height="120">Acme Logistics moves freight for 4,000 customers.</div>
		</section>
	</main>
	<footer data-rr-height="80">&copy; Sample Jobs</footer>
</body>
</html>`

const sparsePage = `<!DOCTYPE html>
<html>
<head><title>Platform Engineer | Sample Jobs</title></head>
<body>
	<main data-rr-height="1600">
		<div data-rr-height="1200" class="card">
			<span data-rr-height="28">About the job</span>
			<div data-rr-height="10" class="spacer"></div>
			<div data-rr-height="12" class="spacer"></div>
			<div data-rr-height="8" class="spacer"></div>
			<div data-rr-height="14" class="spacer"></div>
			<div data-rr-height="9" class="spacer"></div>
			<div data-rr-height="11" class="spacer"></div>
			<div data-rr-height="820">
				<p data-rr-height="800" class="description">
					We need a Platform Engineer to build the paved road for two hundred
					product developers: golden paths on GCP, Terraform modules that do
					not leak, a Kubernetes platform with sane defaults, and CI that
					finishes before the coffee does. You will pair with teams migrating
					off hand-rolled Docker scripts and teach them to love boring
					deploys.
				</p>
			</div>
		</div>
	</main>
</body>
</html>`
