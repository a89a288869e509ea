package infra

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsautoscaling"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	elb "github.com/aws/aws-cdk-go/awscdk/v2/awselasticloadbalancingv2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

var webUserData = []string{
	"#!/bin/bash -xe",
	"yum update -y",
	"yum install -y httpd",
	"systemctl start httpd",
	"systemctl enable httpd",
	"echo '<html><body><h1>Hello, VPC from CDK!</h1><p>Server is up and running.</p></body></html>' > /var/www/html/index.html",
	"curl http://169.254.169.254/latest/meta-data/instance-id > /var/www/html/instance.txt",
	"echo 'UserData script completed' > /var/www/html/userdata_complete.txt",
}

// NewVpcStack declares a two-AZ VPC with an auto scaling group of httpd
// instances behind an internet-facing application load balancer.
func NewVpcStack(scope constructs.Construct, id string, props *StackProps) awscdk.Stack {
	stack := newStack(scope, id, props)

	vpc := awsec2.NewVpc(stack, jsii.String("HelloVpcCdkVpc"), &awsec2.VpcProps{
		IpAddresses: awsec2.IpAddresses_Cidr(jsii.String("10.1.0.0/16")),
		MaxAzs:      jsii.Number(2),
		SubnetConfiguration: &[]*awsec2.SubnetConfiguration{
			{CidrMask: jsii.Number(24), Name: jsii.String("Web"), SubnetType: awsec2.SubnetType_PUBLIC},
			{CidrMask: jsii.Number(24), Name: jsii.String("Application"), SubnetType: awsec2.SubnetType_PRIVATE_ISOLATED},
		},
	})

	public := &awsec2.SubnetSelection{SubnetType: awsec2.SubnetType_PUBLIC}

	asg := awsautoscaling.NewAutoScalingGroup(stack, jsii.String("HelloVpcCdkAsg"), &awsautoscaling.AutoScalingGroupProps{
		Vpc:          vpc,
		InstanceType: awsec2.NewInstanceType(jsii.String("t2.micro")),
		MachineImage: awsec2.NewAmazonLinuxImage(&awsec2.AmazonLinuxImageProps{
			Generation:     awsec2.AmazonLinuxGeneration_AMAZON_LINUX_2,
			Edition:        awsec2.AmazonLinuxEdition_STANDARD,
			Virtualization: awsec2.AmazonLinuxVirt_HVM,
			Storage:        awsec2.AmazonLinuxStorage_GENERAL_PURPOSE,
		}),
		MinCapacity:     jsii.Number(1),
		DesiredCapacity: jsii.Number(2),
		MaxCapacity:     jsii.Number(3),
		VpcSubnets:      public,
	})
	for _, line := range webUserData {
		asg.AddUserData(jsii.String(line))
	}
	asg.Connections().AllowFromAnyIpv4(awsec2.Port_Tcp(jsii.Number(80)), jsii.String("Allow HTTP traffic"))

	lb := elb.NewApplicationLoadBalancer(stack, jsii.String("HelloVpcCdkLoadBalancer"), &elb.ApplicationLoadBalancerProps{
		Vpc:            vpc,
		InternetFacing: jsii.Bool(true),
		VpcSubnets:     public,
	})

	targetGroup := elb.NewApplicationTargetGroup(stack, jsii.String("WebTargetGroup"), &elb.ApplicationTargetGroupProps{
		Vpc:        vpc,
		Port:       jsii.Number(80),
		Protocol:   elb.ApplicationProtocol_HTTP,
		TargetType: elb.TargetType_INSTANCE,
		HealthCheck: &elb.HealthCheck{
			Path:                    jsii.String("/"),
			Interval:                awscdk.Duration_Seconds(jsii.Number(60)),
			Timeout:                 awscdk.Duration_Seconds(jsii.Number(5)),
			HealthyThresholdCount:   jsii.Number(2),
			UnhealthyThresholdCount: jsii.Number(3),
			HealthyHttpCodes:        jsii.String("200,302,404"),
		},
	})
	targetGroup.AddTarget(asg)

	listener := lb.AddListener(jsii.String("HttpListener"), &elb.BaseApplicationListenerProps{
		Port:                jsii.Number(80),
		Open:                jsii.Bool(true),
		DefaultTargetGroups: &[]elb.IApplicationTargetGroup{targetGroup},
	})
	listener.Connections().AllowDefaultPortFromAnyIpv4(jsii.String("Allow internet access to the load balancer"))

	awscdk.NewCfnOutput(stack, jsii.String("LoadBalancerDNS"), &awscdk.CfnOutputProps{
		Value:       lb.LoadBalancerDnsName(),
		Description: jsii.String("DNS name of the load balancer"),
		ExportName:  jsii.String("HelloVpcLbDns"),
	})

	return stack
}
